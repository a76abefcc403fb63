// Package store implements the columnar entity/property/quantity store
// (C5): TypedArray-backed tables built by monotone builders, immutable
// after build(), with per-column side indices for O(1)/O(log n) lookup.
package store

import "sort"

// Flag bits for EntityRow.Flags.
const (
	HasGeometry uint8 = 1 << iota
	HasProperties
	HasQuantities
	IsType
	IsExternal
	HasOpenings
	IsFilling
)

// EntityRow is one row of the entity table (spec §3).
type EntityRow struct {
	ExpressID         uint32
	TypeEnum          uint16
	GlobalID          uint32 // interned
	Name              uint32 // interned
	Description       uint32 // interned
	ObjectType        uint32 // interned
	Flags             uint8
	ContainedInStorey int32 // -1 = none
	DefinedByType     int32
	GeometryIndex     int32
}

// TypeTable assigns stable 16-bit enum values to type names in first-seen
// order.
type TypeTable struct {
	names []string
	index map[string]uint16
}

func NewTypeTable() *TypeTable {
	return &TypeTable{index: make(map[string]uint16)}
}

func (t *TypeTable) EnumFor(name string) uint16 {
	if e, ok := t.index[name]; ok {
		return e
	}
	e := uint16(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = e
	return e
}

func (t *TypeTable) NameOf(e uint16) string { return t.names[e] }

// Names returns every registered type name, enum-ordered, for callers that
// need to rebuild an equivalent TypeTable (e.g. the on-disk cache) by
// replaying EnumFor in the same order.
func (t *TypeTable) Names() []string { return t.names }

// EntityBuilder accumulates entity rows. Add only appends; Build() sorts by
// (typeEnum, expressID) to satisfy the typeRanges contiguity invariant and
// produces a separate expressID-sorted index for binary search lookup.
type EntityBuilder struct {
	types *TypeTable
	rows  []EntityRow
}

func NewEntityBuilder(types *TypeTable) *EntityBuilder {
	return &EntityBuilder{types: types, rows: make([]EntityRow, 0, 1024)}
}

func (b *EntityBuilder) Add(row EntityRow) {
	b.rows = append(b.rows, row)
}

// EntityTable is the immutable, built entity table.
type EntityTable struct {
	types  *TypeTable
	rows   []EntityRow // sorted by (TypeEnum, ExpressID)
	ranges map[uint16][2]int

	byExpressID []uint32 // sorted express ids, parallel to rowIndex
	rowIndex    []int    // row index in `rows` for the corresponding byExpressID entry
}

func (b *EntityBuilder) Build() *EntityTable {
	rows := make([]EntityRow, len(b.rows))
	copy(rows, b.rows)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TypeEnum != rows[j].TypeEnum {
			return rows[i].TypeEnum < rows[j].TypeEnum
		}
		return rows[i].ExpressID < rows[j].ExpressID
	})

	ranges := make(map[uint16][2]int)
	for i, r := range rows {
		rg, ok := ranges[r.TypeEnum]
		if !ok {
			ranges[r.TypeEnum] = [2]int{i, i + 1}
			continue
		}
		rg[1] = i + 1
		ranges[r.TypeEnum] = rg
	}

	byID := make([]uint32, len(rows))
	rowIdx := make([]int, len(rows))
	for i, r := range rows {
		byID[i] = r.ExpressID
		rowIdx[i] = i
	}
	sort.Slice(rowIdx, func(i, j int) bool { return byID[rowIdx[i]] < byID[rowIdx[j]] })
	sortedIDs := make([]uint32, len(rows))
	for i, ri := range rowIdx {
		sortedIDs[i] = rows[ri].ExpressID
	}

	return &EntityTable{
		types:       b.types,
		rows:        rows,
		ranges:      ranges,
		byExpressID: sortedIDs,
		rowIndex:    rowIdx,
	}
}

func (t *EntityTable) Len() int { return len(t.rows) }

// Row returns the row at table index i (not an express id).
func (t *EntityTable) Row(i int) EntityRow { return t.rows[i] }

// TypeRange returns [start,end) of rows for typeEnum.
func (t *EntityTable) TypeRange(typeEnum uint16) (int, int, bool) {
	rg, ok := t.ranges[typeEnum]
	if !ok {
		return 0, 0, false
	}
	return rg[0], rg[1], true
}

// ByType returns the rows whose TypeEnum is typeEnum, O(1)+O(k).
func (t *EntityTable) ByType(typeEnum uint16) []EntityRow {
	start, end, ok := t.TypeRange(typeEnum)
	if !ok {
		return nil
	}
	return t.rows[start:end]
}

// ByTypeName resolves name through the shared TypeTable then calls ByType.
func (t *EntityTable) ByTypeName(name string) []EntityRow {
	e, ok := t.types.index[name]
	if !ok {
		return nil
	}
	return t.ByType(e)
}

// ByExpressID does a binary search over the express-id-sorted side index,
// O(log n).
func (t *EntityTable) ByExpressID(id uint32) (EntityRow, bool) {
	i := sort.Search(len(t.byExpressID), func(i int) bool { return t.byExpressID[i] >= id })
	if i < len(t.byExpressID) && t.byExpressID[i] == id {
		return t.rows[t.rowIndex[i]], true
	}
	return EntityRow{}, false
}

func (t *EntityTable) TypeName(e uint16) string { return t.types.NameOf(e) }
func (t *EntityTable) Types() *TypeTable         { return t.types }

// All returns every row, type-sorted.
func (t *EntityTable) All() []EntityRow { return t.rows }
