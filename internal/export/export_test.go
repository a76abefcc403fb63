package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTableFixture(t *testing.T) (*store.EntityTable, *store.PropertyTable, *store.QuantityTable, *intern.Table) {
	t.Helper()
	strs := intern.New()
	types := store.NewTypeTable()

	wallType := types.EnumFor("IFCWALL")
	eb := store.NewEntityBuilder(types)
	eb.Add(store.EntityRow{
		ExpressID:         10,
		TypeEnum:          wallType,
		GlobalID:          strs.Intern("2O2Fr$t4X7Zf8NOew3FLOH"),
		Name:              strs.Intern("Wall-001"),
		Flags:             store.HasGeometry | store.HasProperties | store.HasQuantities,
		ContainedInStorey: 4,
		DefinedByType:     -1,
	})
	entities := eb.Build()

	pb := store.NewPropertyBuilder()
	pb.Add(store.PropertyRow{
		EntityID:      10,
		PsetName:      strs.Intern("Pset_WallCommon"),
		PropName:      strs.Intern("IsExternal"),
		Discriminator: store.PropBool,
		ValueBool:     1,
	})
	properties := pb.Build()

	qb := store.NewQuantityBuilder()
	qb.Add(store.QuantityRow{EntityID: 10, Type: store.QuantityLength, Value: 5.0, Formula: -1})
	quantities := qb.Build()

	return entities, properties, quantities, strs
}

func TestCSVWriterRoundTrips(t *testing.T) {
	entities, properties, quantities, strs := buildTableFixture(t)
	w := NewCSVWriter()

	var entBuf, propBuf, qtyBuf bytes.Buffer
	require.NoError(t, w.WriteEntities(&entBuf, entities, strs))
	require.NoError(t, w.WriteProperties(&propBuf, properties, strs))
	require.NoError(t, w.WriteQuantities(&qtyBuf, quantities, strs))

	entRecords, err := csv.NewReader(&entBuf).ReadAll()
	require.NoError(t, err)
	require.Len(t, entRecords, 2) // header + 1 row
	assert.Equal(t, "10", entRecords[1][0])
	assert.Equal(t, "IFCWALL", entRecords[1][1])
	assert.Equal(t, "Wall-001", entRecords[1][3])

	propRecords, err := csv.NewReader(&propBuf).ReadAll()
	require.NoError(t, err)
	require.Len(t, propRecords, 2)
	assert.Equal(t, "true", propRecords[1][6])

	qtyRecords, err := csv.NewReader(&qtyBuf).ReadAll()
	require.NoError(t, err)
	require.Len(t, qtyRecords, 2)
	assert.Equal(t, "Length", qtyRecords[1][1])
	assert.Equal(t, "5", qtyRecords[1][2])
}

func TestParquetWriterProducesNonEmptyOutput(t *testing.T) {
	entities, properties, quantities, strs := buildTableFixture(t)
	w := NewParquetWriter()

	var entBuf, propBuf, qtyBuf bytes.Buffer
	require.NoError(t, w.WriteEntities(&entBuf, entities, strs))
	require.NoError(t, w.WriteProperties(&propBuf, properties, strs))
	require.NoError(t, w.WriteQuantities(&qtyBuf, quantities, strs))

	assert.Greater(t, entBuf.Len(), 0)
	assert.Greater(t, propBuf.Len(), 0)
	assert.Greater(t, qtyBuf.Len(), 0)

	// Parquet files carry the magic footer/header bytes "PAR1".
	assert.Equal(t, "PAR1", string(entBuf.Bytes()[:4]))
	assert.Equal(t, "PAR1", string(propBuf.Bytes()[:4]))
	assert.Equal(t, "PAR1", string(qtyBuf.Bytes()[:4]))
}

func TestGLTFWriterEmitsValidDocument(t *testing.T) {
	mesh := geometry.Mesh{}
	mesh.AppendTriangle(
		geomath.Vec3{X: 0, Y: 0, Z: 0},
		geomath.Vec3{X: 1, Y: 0, Z: 0},
		geomath.Vec3{X: 0, Y: 1, Z: 0},
		geomath.Vec3{X: 0, Y: 0, Z: 1},
	)

	w := NewGLTFWriter()
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, []Element{{ExpressID: 42, Mesh: mesh}}))

	out := buf.String()
	assert.Contains(t, out, `"element-42"`)
	assert.Contains(t, out, `"version":"2.0"`)
	assert.Contains(t, out, "data:application/octet-stream;base64,")
}

func TestGLTFWriterSkipsEmptyMeshes(t *testing.T) {
	w := NewGLTFWriter()
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, []Element{{ExpressID: 1, Mesh: geometry.Mesh{}}}))

	out := buf.String()
	assert.Contains(t, out, `"nodes":null`)
	assert.Contains(t, out, `"meshes":null`)
}
