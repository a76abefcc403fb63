package query

import "github.com/arx-os/ifclite/internal/store"

// PropertyMatch tests a single property row, already narrowed to the
// requested property (and, if given, pset) name.
type PropertyMatch func(row store.PropertyRow) bool

// ByProperty finds every entity carrying a property named propName (in
// pset psetName, or any pset if psetName is empty) whose row satisfies
// match. A nil match accepts every row with that name. Property/pset
// names that were never interned during load can't match anything and
// return nil rather than an error — a predicate over an unknown name is
// indistinguishable from one that simply found nothing.
func (e *Engine) ByProperty(psetName, propName string, match PropertyMatch) []store.EntityRow {
	if e.properties == nil || e.strings == nil {
		return nil
	}
	propIdx, ok := e.strings.Lookup(propName)
	if !ok {
		return nil
	}
	rows := e.properties.ByPropName(propIdx)
	if rows == nil {
		return nil
	}

	var psetIdx uint32
	filterPset := psetName != ""
	if filterPset {
		idx, ok := e.strings.Lookup(psetName)
		if !ok {
			return nil
		}
		psetIdx = idx
	}

	seen := make(map[uint32]bool)
	var out []store.EntityRow
	for _, r := range rows {
		if filterPset && r.PsetName != psetIdx {
			continue
		}
		if match != nil && !match(r) {
			continue
		}
		if seen[r.EntityID] {
			continue
		}
		seen[r.EntityID] = true
		if row, ok := e.entities.ByExpressID(r.EntityID); ok {
			out = append(out, row)
		}
	}
	return out
}

// RealAtLeast matches a real-valued property >= threshold.
func RealAtLeast(threshold float64) PropertyMatch {
	return func(r store.PropertyRow) bool {
		return r.Discriminator == store.PropReal && r.ValueReal >= threshold
	}
}

// RealInRange matches a real-valued property within [lo, hi].
func RealInRange(lo, hi float64) PropertyMatch {
	return func(r store.PropertyRow) bool {
		return r.Discriminator == store.PropReal && r.ValueReal >= lo && r.ValueReal <= hi
	}
}

// IntEquals matches an integer-valued property exactly equal to v.
func IntEquals(v int32) PropertyMatch {
	return func(r store.PropertyRow) bool {
		return r.Discriminator == store.PropInt && r.ValueInt == v
	}
}

// BoolEquals matches a bool-valued property exactly equal to v (a null
// bool row, ValueBool == 255, never matches either side).
func BoolEquals(v bool) PropertyMatch {
	want := uint8(0)
	if v {
		want = 1
	}
	return func(r store.PropertyRow) bool {
		return r.Discriminator == store.PropBool && r.ValueBool == want
	}
}

// StringEquals matches a string-valued property whose interned value
// equals s exactly.
func (e *Engine) StringEquals(s string) PropertyMatch {
	idx, ok := e.strings.Lookup(s)
	if !ok {
		return func(store.PropertyRow) bool { return false }
	}
	return func(r store.PropertyRow) bool {
		return r.Discriminator == store.PropString && r.ValueString >= 0 && uint32(r.ValueString) == idx
	}
}
