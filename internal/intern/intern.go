// Package intern implements the append-only string table (C1): strings are
// mapped to stable 32-bit indices with zero allocation on repeat lookup.
package intern

// Empty is the reserved index for the empty string.
const Empty uint32 = 0

// Table is an append-only string table. Not safe for concurrent Intern
// calls; safe for concurrent Get once the table is frozen (build-time only
// writer, matching the single-writer rule in spec §5).
type Table struct {
	strings []string
	index   map[string]uint32
}

// New creates a Table with "" pre-interned at index 0.
func New() *Table {
	t := &Table{
		strings: make([]string, 0, 64),
		index:   make(map[string]uint32, 64),
	}
	t.strings = append(t.strings, "")
	t.index[""] = Empty
	return t
}

// Intern returns s's stable index, interning it if not already present.
func (t *Table) Intern(s string) uint32 {
	if s == "" {
		return Empty
	}
	if idx, ok := t.index[s]; ok {
		return idx
	}
	idx := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = idx
	return idx
}

// Get returns the string at i. Panics on an out-of-range index, matching
// the invariant that indices only ever come from Intern on this table.
func (t *Table) Get(i uint32) string {
	return t.strings[i]
}

// Len returns the number of distinct interned strings, including "".
func (t *Table) Len() int { return len(t.strings) }

// Lookup returns the index of s without interning it.
func (t *Table) Lookup(s string) (uint32, bool) {
	if s == "" {
		return Empty, true
	}
	idx, ok := t.index[s]
	return idx, ok
}

// All returns a read-only view of every interned string, index-ordered.
func (t *Table) All() []string {
	return t.strings
}
