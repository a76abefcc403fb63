package store

import "math"

// PropDiscriminator selects which value field is live on a PropertyRow.
type PropDiscriminator uint8

const (
	PropString PropDiscriminator = iota
	PropReal
	PropInt
	PropBool
)

// PropertyRow is one row of the property table (spec §3).
type PropertyRow struct {
	EntityID    uint32
	PsetName    uint32 // interned
	PsetGlobalID uint32 // interned
	PropName    uint32 // interned
	Discriminator PropDiscriminator
	ValueString int32 // interned index, or -1
	ValueReal   float64
	ValueInt    int32
	ValueBool   uint8 // 0|1, 255=null
	UnitID      int32
}

// PropertyBuilder accumulates property rows; Add only appends.
type PropertyBuilder struct {
	rows []PropertyRow
}

func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{rows: make([]PropertyRow, 0, 256)}
}

func (b *PropertyBuilder) Add(row PropertyRow) {
	if row.Discriminator != PropReal {
		row.ValueReal = math.NaN()
	}
	if row.Discriminator != PropString {
		row.ValueString = -1
	}
	b.rows = append(b.rows, row)
}

// PropertyTable is the immutable built property table with side indices.
type PropertyTable struct {
	rows        []PropertyRow
	entityIndex map[uint32][]int
	psetIndex   map[uint32][]int
	propIndex   map[uint32][]int
}

func (b *PropertyBuilder) Build() *PropertyTable {
	rows := make([]PropertyRow, len(b.rows))
	copy(rows, b.rows)

	t := &PropertyTable{
		rows:        rows,
		entityIndex: make(map[uint32][]int),
		psetIndex:   make(map[uint32][]int),
		propIndex:   make(map[uint32][]int),
	}
	for i, r := range rows {
		t.entityIndex[r.EntityID] = append(t.entityIndex[r.EntityID], i)
		t.psetIndex[r.PsetName] = append(t.psetIndex[r.PsetName], i)
		t.propIndex[r.PropName] = append(t.propIndex[r.PropName], i)
	}
	return t
}

func (t *PropertyTable) Len() int { return len(t.rows) }
func (t *PropertyTable) Row(i int) PropertyRow { return t.rows[i] }

func (t *PropertyTable) ByEntity(entityID uint32) []PropertyRow {
	return t.rowsFor(t.entityIndex[entityID])
}

func (t *PropertyTable) ByPsetName(psetName uint32) []PropertyRow {
	return t.rowsFor(t.psetIndex[psetName])
}

func (t *PropertyTable) ByPropName(propName uint32) []PropertyRow {
	return t.rowsFor(t.propIndex[propName])
}

func (t *PropertyTable) rowsFor(idxs []int) []PropertyRow {
	if idxs == nil {
		return nil
	}
	out := make([]PropertyRow, len(idxs))
	for i, idx := range idxs {
		out[i] = t.rows[idx]
	}
	return out
}
