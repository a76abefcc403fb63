package hierarchy

import (
	"testing"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeyValues builds a full flattened IfcBuildingStorey attribute list
// (IfcRoot..IfcSpatialStructureElement, then Elevation) with elevation set
// to elev.
func storeyValues(elev decode.Value) []decode.Value {
	v := make([]decode.Value, elevationIndex+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[elevationIndex] = elev
	return v
}

// buildSample wires Project(1) -Aggregates-> Site(2) -Aggregates-> Building(3)
// -Aggregates-> Storey(4) -Aggregates-> Space(5), with elements 10 and 11
// ContainsElements'd into Storey(4).
func buildSample(t *testing.T) (*rawmodel.Store, *graph.Graph) {
	t.Helper()
	src := rawmodel.NewStore()
	src.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCPROJECT", Values: nil})
	src.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCSITE", Values: nil})
	src.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCBUILDING", Values: nil})
	src.Add(rawmodel.Entity{ExpressID: 4, TypeName: "IFCBUILDINGSTOREY", Values: storeyValues(decode.Real(3.0))})
	src.Add(rawmodel.Entity{ExpressID: 5, TypeName: "IFCSPACE", Values: nil})
	src.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCWALL", Values: nil})
	src.Add(rawmodel.Entity{ExpressID: 11, TypeName: "IFCWALL", Values: nil})

	b := graph.NewBuilder()
	b.Add(graph.Edge{Source: 1, Target: 2, Type: graph.Aggregates, RelID: 100})
	b.Add(graph.Edge{Source: 2, Target: 3, Type: graph.Aggregates, RelID: 101})
	b.Add(graph.Edge{Source: 3, Target: 4, Type: graph.Aggregates, RelID: 102})
	b.Add(graph.Edge{Source: 4, Target: 5, Type: graph.Aggregates, RelID: 103})
	b.Add(graph.Edge{Source: 4, Target: 10, Type: graph.ContainsElements, RelID: 200})
	b.Add(graph.Edge{Source: 4, Target: 11, Type: graph.ContainsElements, RelID: 201})
	return src, b.Build()
}

func TestBuildDiscoversFullTree(t *testing.T) {
	src, g := buildSample(t)
	h := Build(src, g, logger.New(logger.ERROR))

	require.NotNil(t, h.Root)
	assert.Equal(t, uint32(1), h.Root.ExpressID)
	require.Len(t, h.Root.Children, 1)
	site := h.Root.Children[0]
	assert.Equal(t, "IFCSITE", site.Type)
	require.Len(t, site.Children, 1)
	building := site.Children[0]
	require.Len(t, building.Children, 1)
	storey := building.Children[0]
	assert.Equal(t, "IFCBUILDINGSTOREY", storey.Type)
	require.Len(t, storey.Children, 1)
	assert.Equal(t, "IFCSPACE", storey.Children[0].Type)
}

func TestStoreyElevationAndContainment(t *testing.T) {
	src, g := buildSample(t)
	h := Build(src, g, logger.New(logger.ERROR))

	elev, ok := h.StoreyElevation(4)
	require.True(t, ok)
	assert.InDelta(t, 3.0, elev, 1e-9)

	assert.ElementsMatch(t, []uint32{10, 11}, h.ByStorey(4))

	storeyID, ok := h.ElementStorey(10)
	require.True(t, ok)
	assert.Equal(t, uint32(4), storeyID)
}

func TestEmptyHierarchyWithoutProject(t *testing.T) {
	src := rawmodel.NewStore()
	g := graph.NewBuilder().Build()
	h := Build(src, g, logger.New(logger.ERROR))

	assert.Nil(t, h.Root)
	assert.Empty(t, h.ByStorey(4))
	_, ok := h.ElementStorey(10)
	assert.False(t, ok)
}

func TestDuplicateContainmentFirstWins(t *testing.T) {
	src, _ := buildSample(t)
	src.Add(rawmodel.Entity{ExpressID: 6, TypeName: "IFCBUILDINGSTOREY", Values: storeyValues(decode.Null())})

	b := graph.NewBuilder()
	b.Add(graph.Edge{Source: 1, Target: 2, Type: graph.Aggregates, RelID: 100})
	b.Add(graph.Edge{Source: 2, Target: 3, Type: graph.Aggregates, RelID: 101})
	b.Add(graph.Edge{Source: 3, Target: 4, Type: graph.Aggregates, RelID: 102})
	b.Add(graph.Edge{Source: 3, Target: 6, Type: graph.Aggregates, RelID: 103})
	b.Add(graph.Edge{Source: 4, Target: 10, Type: graph.ContainsElements, RelID: 200})
	b.Add(graph.Edge{Source: 6, Target: 10, Type: graph.ContainsElements, RelID: 201})
	g := b.Build()

	h := Build(src, g, logger.New(logger.ERROR))
	storeyID, ok := h.ElementStorey(10)
	require.True(t, ok)
	assert.Equal(t, uint32(4), storeyID)
	assert.ElementsMatch(t, []uint32{10}, h.ByStorey(4))
	assert.Empty(t, h.ByStorey(6))
}
