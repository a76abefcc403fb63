package ifcmodel

import (
	"testing"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	projectID  = 1
	storeyID   = 2
	wallID     = 10
	wallTypeID = 11
	shapeID    = 50
	psetID     = 60
	isExtID    = 61
	widthID    = 62
	qsetID     = 70
	qtyLenID   = 71
)

func nullValues(n int) []decode.Value {
	v := make([]decode.Value, n)
	for i := range v {
		v[i] = decode.Null()
	}
	return v
}

func TestIsRootDescendant(t *testing.T) {
	assert.True(t, isRootDescendant("IFCWALL"))
	assert.True(t, isRootDescendant("IFCPROPERTYSET"))
	assert.False(t, isRootDescendant("IFCCARTESIANPOINT"))
	assert.False(t, isRootDescendant("IFCPROPERTYSINGLEVALUE"))
}

// buildWallFixture assembles a wall with geometry, a containing storey, a
// type, a property set (including an IsExternal
// marker), and a quantity set, then scans relationships and builds the
// spatial hierarchy exactly as Loader.parse would.
func buildWallFixture(t *testing.T) (*rawmodel.Store, *intern.Table, *graph.Graph, *hierarchy.Hierarchy, []rawmodel.Entity) {
	t.Helper()
	table := intern.New()
	src := rawmodel.NewStore()

	src.Add(rawmodel.Entity{ExpressID: projectID, TypeName: "IFCPROJECT"})

	globalIdx := mustIdx("IFCBUILDINGSTOREY", "GlobalId")
	storeyValues := nullValues(mustIdx("IFCBUILDINGSTOREY", "Elevation") + 1)
	storeyValues[globalIdx] = decode.String(table.Intern("storey-guid"))
	src.Add(rawmodel.Entity{ExpressID: storeyID, TypeName: "IFCBUILDINGSTOREY", Values: storeyValues})

	src.Add(rawmodel.Entity{ExpressID: shapeID, TypeName: "IFCPRODUCTDEFINITIONSHAPE"})

	wallValues := nullValues(mustIdx("IFCWALL", "PredefinedType") + 1)
	wallValues[mustIdx("IFCWALL", "GlobalId")] = decode.String(table.Intern("wall-guid"))
	wallValues[mustIdx("IFCWALL", "Name")] = decode.String(table.Intern("Wall-1"))
	wallValues[mustIdx("IFCWALL", "Representation")] = decode.Ref(shapeID)
	src.Add(rawmodel.Entity{ExpressID: wallID, TypeName: "IFCWALL", Values: wallValues})

	src.Add(rawmodel.Entity{ExpressID: wallTypeID, TypeName: "IFCWALLTYPE"})

	psetValues := nullValues(mustIdx("IFCPROPERTYSET", "HasProperties") + 1)
	psetValues[mustIdx("IFCPROPERTYSET", "Name")] = decode.String(table.Intern("Pset_WallCommon"))
	psetValues[mustIdx("IFCPROPERTYSET", "HasProperties")] = decode.List([]decode.Value{decode.Ref(isExtID), decode.Ref(widthID)})
	src.Add(rawmodel.Entity{ExpressID: psetID, TypeName: "IFCPROPERTYSET", Values: psetValues})

	isExtValues := nullValues(mustIdx("IFCPROPERTYSINGLEVALUE", "NominalValue") + 1)
	isExtValues[mustIdx("IFCPROPERTYSINGLEVALUE", "Name")] = decode.String(table.Intern("IsExternal"))
	isExtValues[mustIdx("IFCPROPERTYSINGLEVALUE", "NominalValue")] = decode.Bool(true)
	src.Add(rawmodel.Entity{ExpressID: isExtID, TypeName: "IFCPROPERTYSINGLEVALUE", Values: isExtValues})

	widthValues := nullValues(mustIdx("IFCPROPERTYSINGLEVALUE", "NominalValue") + 1)
	widthValues[mustIdx("IFCPROPERTYSINGLEVALUE", "Name")] = decode.String(table.Intern("Width"))
	widthValues[mustIdx("IFCPROPERTYSINGLEVALUE", "NominalValue")] = decode.Real(0.2)
	src.Add(rawmodel.Entity{ExpressID: widthID, TypeName: "IFCPROPERTYSINGLEVALUE", Values: widthValues})

	qsetValues := nullValues(mustIdx("IFCELEMENTQUANTITY", "Quantities") + 1)
	qsetValues[mustIdx("IFCELEMENTQUANTITY", "Quantities")] = decode.List([]decode.Value{decode.Ref(qtyLenID)})
	src.Add(rawmodel.Entity{ExpressID: qsetID, TypeName: "IFCELEMENTQUANTITY", Values: qsetValues})

	qtyLenValues := nullValues(mustIdx("IFCQUANTITYLENGTH", "LengthValue") + 1)
	qtyLenValues[mustIdx("IFCQUANTITYLENGTH", "LengthValue")] = decode.Real(5.0)
	src.Add(rawmodel.Entity{ExpressID: qtyLenID, TypeName: "IFCQUANTITYLENGTH", Values: qtyLenValues})

	// IfcRelDefinesByType and IfcRelDefinesByProperties both declare
	// RelatedObjects before their single relating-side attribute.
	relValues := func(relating uint32, related ...uint32) []decode.Value {
		return append(nullValues(4), decode.List(refsOf(related...)), decode.Ref(relating))
	}
	src.Add(rawmodel.Entity{ExpressID: 99, TypeName: "IFCRELAGGREGATES",
		Values: append(nullValues(4), decode.Ref(projectID), decode.List(refsOf(storeyID)))})
	src.Add(rawmodel.Entity{ExpressID: 100, TypeName: "IFCRELCONTAINEDINSPATIALSTRUCTURE",
		Values: append(nullValues(4), decode.List(refsOf(wallID)), decode.Ref(storeyID))})
	src.Add(rawmodel.Entity{ExpressID: 101, TypeName: "IFCRELDEFINESBYTYPE", Values: relValues(wallTypeID, wallID)})
	src.Add(rawmodel.Entity{ExpressID: 102, TypeName: "IFCRELDEFINESBYPROPERTIES", Values: relValues(psetID, wallID)})
	src.Add(rawmodel.Entity{ExpressID: 103, TypeName: "IFCRELDEFINESBYPROPERTIES", Values: relValues(qsetID, wallID)})

	g := graph.ScanRelationships(src).Build()
	h := hierarchy.Build(src, g, logger.New(logger.ERROR))

	return src, table, g, h, []rawmodel.Entity{
		mustEntity(t, src, wallID),
	}
}

func refsOf(ids ...uint32) []decode.Value {
	out := make([]decode.Value, len(ids))
	for i, id := range ids {
		out[i] = decode.Ref(id)
	}
	return out
}

func mustEntity(t *testing.T, src *rawmodel.Store, id uint32) rawmodel.Entity {
	t.Helper()
	e, ok := src.Entity(id)
	require.True(t, ok)
	return e
}

func TestBuildEntityRowFlags(t *testing.T) {
	src, table, g, h, roots := buildWallFixture(t)

	types := store.NewTypeTable()
	row := buildEntityRow(roots[0], types, src, table, g, h)

	assert.Equal(t, uint32(wallID), row.ExpressID)
	assert.Equal(t, "wall-guid", table.Get(row.GlobalID))
	assert.Equal(t, "Wall-1", table.Get(row.Name))
	assert.NotZero(t, row.Flags&store.HasGeometry)
	assert.NotZero(t, row.Flags&store.HasProperties)
	assert.NotZero(t, row.Flags&store.HasQuantities)
	assert.NotZero(t, row.Flags&store.IsExternal)
	assert.Zero(t, row.Flags&store.IsType)
	assert.Equal(t, int32(storeyID), row.ContainedInStorey)
	assert.Equal(t, int32(wallTypeID), row.DefinedByType)
}

func TestBuildTablesPropertiesAndQuantities(t *testing.T) {
	src, table, g, h, roots := buildWallFixture(t)

	entities, properties, quantities := buildTables(src, table, g, h, roots)
	require.Equal(t, 1, entities.Len())

	propRows := properties.ByEntity(wallID)
	require.Len(t, propRows, 2)
	var sawWidth, sawIsExternal bool
	for _, p := range propRows {
		switch table.Get(p.PropName) {
		case "Width":
			sawWidth = true
			assert.Equal(t, store.PropReal, p.Discriminator)
			assert.InDelta(t, 0.2, p.ValueReal, 1e-9)
		case "IsExternal":
			sawIsExternal = true
			assert.Equal(t, store.PropBool, p.Discriminator)
			assert.Equal(t, uint8(1), p.ValueBool)
		}
	}
	assert.True(t, sawWidth)
	assert.True(t, sawIsExternal)

	qtyRows := quantities.ByEntity(wallID)
	require.Len(t, qtyRows, 1)
	assert.Equal(t, store.QuantityLength, qtyRows[0].Type)
	assert.InDelta(t, 5.0, qtyRows[0].Value, 1e-9)
}
