package query

import (
	"testing"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	projectID  = 1
	siteID     = 2
	buildingID = 3
	storeyID   = 4
	wallID     = 10
)

func mustIdx(t *testing.T, typeName, attrName string) int {
	t.Helper()
	idx, ok := schema.Global().AttributeIndex(typeName, attrName)
	require.True(t, ok, "%s.%s", typeName, attrName)
	return idx
}

func nullValues(n int) []decode.Value {
	v := make([]decode.Value, n)
	for i := range v {
		v[i] = decode.Null()
	}
	return v
}

// buildFixture wires a minimal Project->Site->Building->Storey->Wall tree
// plus a property row, a quantity row, and an IfcSite georeference, and
// returns an Engine over the assembled tables.
func buildFixture(t *testing.T) *Engine {
	t.Helper()
	table := intern.New()
	src := rawmodel.NewStore()

	src.Add(rawmodel.Entity{ExpressID: projectID, TypeName: "IFCPROJECT"})

	idxRefLat := mustIdx(t, "IFCSITE", "RefLatitude")
	idxRefLon := mustIdx(t, "IFCSITE", "RefLongitude")
	idxRefElev := mustIdx(t, "IFCSITE", "RefElevation")
	maxSiteIdx := idxRefLat
	for _, i := range []int{idxRefLon, idxRefElev} {
		if i > maxSiteIdx {
			maxSiteIdx = i
		}
	}
	siteValues := nullValues(maxSiteIdx + 1)
	siteValues[idxRefLat] = decode.List([]decode.Value{decode.Integer(40), decode.Integer(26), decode.Integer(46)})
	siteValues[idxRefLon] = decode.List([]decode.Value{decode.Integer(-79), decode.Integer(59), decode.Integer(45)})
	siteValues[idxRefElev] = decode.Real(120.0)
	src.Add(rawmodel.Entity{ExpressID: siteID, TypeName: "IFCSITE", Values: siteValues})

	src.Add(rawmodel.Entity{ExpressID: buildingID, TypeName: "IFCBUILDING"})

	idxElevation := mustIdx(t, "IFCBUILDINGSTOREY", "Elevation")
	storeyValues := nullValues(idxElevation + 1)
	storeyValues[idxElevation] = decode.Real(3.0)
	src.Add(rawmodel.Entity{ExpressID: storeyID, TypeName: "IFCBUILDINGSTOREY", Values: storeyValues})

	src.Add(rawmodel.Entity{ExpressID: wallID, TypeName: "IFCWALL"})

	gb := graph.NewBuilder()
	gb.Add(graph.Edge{Source: projectID, Target: siteID, Type: graph.Aggregates})
	gb.Add(graph.Edge{Source: siteID, Target: buildingID, Type: graph.Aggregates})
	gb.Add(graph.Edge{Source: buildingID, Target: storeyID, Type: graph.Aggregates})
	gb.Add(graph.Edge{Source: storeyID, Target: wallID, Type: graph.ContainsElements})
	g := gb.Build()

	h := hierarchy.Build(src, g, logger.New(logger.ERROR))

	types := store.NewTypeTable()
	wallEnum := types.EnumFor("IFCWALL")
	eb := store.NewEntityBuilder(types)
	eb.Add(store.EntityRow{
		ExpressID: wallID, TypeEnum: wallEnum,
		ContainedInStorey: storeyID, DefinedByType: -1, GeometryIndex: -1,
		Flags: store.HasGeometry | store.HasProperties | store.HasQuantities,
	})
	entities := eb.Build()

	psetName := table.Intern("Pset_WallCommon")
	propName := table.Intern("Width")
	pb := store.NewPropertyBuilder()
	pb.Add(store.PropertyRow{
		EntityID: wallID, PsetName: psetName, PropName: propName,
		Discriminator: store.PropReal, ValueReal: 0.2,
	})
	props := pb.Build()

	qb := store.NewQuantityBuilder()
	qb.Add(store.QuantityRow{EntityID: wallID, Type: store.QuantityLength, Value: 5.0, Formula: -1})
	quantities := qb.Build()

	return NewEngine(entities, props, quantities, g, h, table, src)
}

func TestByType(t *testing.T) {
	e := buildFixture(t)
	rows := e.ByType("IFCWALL")
	require.Len(t, rows, 1)
	assert.Equal(t, uint32(wallID), rows[0].ExpressID)

	assert.Nil(t, e.ByType("IFCDOOR"))
}

func TestInSpatialContainer(t *testing.T) {
	e := buildFixture(t)
	rows := e.InSpatialContainer(storeyID)
	require.Len(t, rows, 1)
	assert.Equal(t, uint32(wallID), rows[0].ExpressID)

	storey, ok := e.ContainingStorey(wallID)
	require.True(t, ok)
	assert.Equal(t, uint32(storeyID), storey)

	elev, ok := e.StoreyElevation(storeyID)
	require.True(t, ok)
	assert.InDelta(t, 3.0, elev, 1e-9)
}

func TestByPropertyPredicate(t *testing.T) {
	e := buildFixture(t)

	rows := e.ByProperty("Pset_WallCommon", "Width", RealAtLeast(0.1))
	require.Len(t, rows, 1)
	assert.Equal(t, uint32(wallID), rows[0].ExpressID)

	assert.Nil(t, e.ByProperty("Pset_WallCommon", "Width", RealAtLeast(1.0)))
	assert.Nil(t, e.ByProperty("Pset_WallCommon", "Height", nil))
	assert.Nil(t, e.ByProperty("Pset_Nonexistent", "Width", nil))
}

func TestEntityPropertiesAndQuantities(t *testing.T) {
	e := buildFixture(t)

	props := e.EntityProperties(wallID)
	require.Len(t, props, 1)
	assert.InDelta(t, 0.2, props[0].ValueReal, 1e-9)

	qty := e.EntityQuantities(wallID)
	require.Len(t, qty, 1)
	assert.InDelta(t, 5.0, qty[0].Value, 1e-9)
}

func TestProjectLocation(t *testing.T) {
	e := buildFixture(t)

	loc, ok := e.ProjectLocation()
	require.True(t, ok)
	require.True(t, loc.HasLatitude)
	require.True(t, loc.HasLongitude)
	require.True(t, loc.HasElevation)
	assert.InDelta(t, 40.446111, loc.Latitude, 1e-4)
	assert.InDelta(t, -79.995833, loc.Longitude, 1e-4)
	assert.InDelta(t, 120.0, loc.Elevation, 1e-9)
}
