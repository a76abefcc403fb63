package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTableTypeRangeContiguous(t *testing.T) {
	types := NewTypeTable()
	wall := types.EnumFor("IFCWALL")
	slab := types.EnumFor("IFCSLAB")

	b := NewEntityBuilder(types)
	b.Add(EntityRow{ExpressID: 3, TypeEnum: wall})
	b.Add(EntityRow{ExpressID: 1, TypeEnum: slab})
	b.Add(EntityRow{ExpressID: 2, TypeEnum: wall})

	tbl := b.Build()
	start, end, ok := tbl.TypeRange(wall)
	require.True(t, ok)
	assert.Equal(t, 2, end-start)
	for i := start; i < end; i++ {
		assert.Equal(t, wall, tbl.Row(i).TypeEnum)
	}
}

func TestEntityTableByExpressIDBinarySearch(t *testing.T) {
	types := NewTypeTable()
	wall := types.EnumFor("IFCWALL")
	b := NewEntityBuilder(types)
	for _, id := range []uint32{5, 2, 9, 1} {
		b.Add(EntityRow{ExpressID: id, TypeEnum: wall})
	}
	tbl := b.Build()
	row, ok := tbl.ByExpressID(9)
	require.True(t, ok)
	assert.Equal(t, uint32(9), row.ExpressID)

	_, ok = tbl.ByExpressID(999)
	assert.False(t, ok)
}

func TestEntityTableByTypeName(t *testing.T) {
	types := NewTypeTable()
	wall := types.EnumFor("IFCWALL")
	b := NewEntityBuilder(types)
	b.Add(EntityRow{ExpressID: 1, TypeEnum: wall})
	tbl := b.Build()
	rows := tbl.ByTypeName("IFCWALL")
	require.Len(t, rows, 1)
}

func TestEntityFlags(t *testing.T) {
	row := EntityRow{Flags: HasGeometry | IsType}
	assert.NotZero(t, row.Flags&HasGeometry)
	assert.NotZero(t, row.Flags&IsType)
	assert.Zero(t, row.Flags&HasProperties)
}

func TestPropertyTableSideIndices(t *testing.T) {
	pb := NewPropertyBuilder()
	pb.Add(PropertyRow{EntityID: 1, PsetName: 10, PropName: 20, Discriminator: PropReal, ValueReal: 3.5})
	pb.Add(PropertyRow{EntityID: 1, PsetName: 10, PropName: 21, Discriminator: PropString, ValueString: 5})
	pt := pb.Build()

	assert.Len(t, pt.ByEntity(1), 2)
	assert.Len(t, pt.ByPsetName(10), 2)
	assert.Len(t, pt.ByPropName(20), 1)
	assert.Equal(t, int32(5), pt.Row(1).ValueString)
	assert.Equal(t, int32(-1), pt.Row(0).ValueString)
}

func TestQuantityTableByEntity(t *testing.T) {
	qb := NewQuantityBuilder()
	qb.Add(QuantityRow{EntityID: 1, Type: QuantityLength, Value: 3.0})
	qt := qb.Build()
	rows := qt.ByEntity(1)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.0, rows[0].Value)
}
