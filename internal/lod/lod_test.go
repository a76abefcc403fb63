package lod

import (
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/placement"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pointID       = 100
	axisID        = 101
	localPlacemID = 102
	wallID        = 10
)

func buildPlacedFixture(t *testing.T) (*placement.Resolver, *store.QuantityTable) {
	t.Helper()
	src := rawmodel.NewStore()
	table := intern.New()

	src.Add(rawmodel.Entity{ExpressID: pointID, TypeName: "IFCCARTESIANPOINT", Values: []decode.Value{
		decode.List([]decode.Value{decode.Real(5), decode.Real(2), decode.Real(1)}),
	}})
	src.Add(rawmodel.Entity{ExpressID: axisID, TypeName: "IFCAXIS2PLACEMENT3D", Values: []decode.Value{
		decode.Ref(pointID), decode.Null(), decode.Null(),
	}})
	src.Add(rawmodel.Entity{ExpressID: localPlacemID, TypeName: "IFCLOCALPLACEMENT", Values: []decode.Value{
		decode.Null(), decode.Ref(axisID),
	}})
	// The wall shares the same placement; its own express id just carries
	// the quantity row BoundingBox looks up for sizing.
	src.Add(rawmodel.Entity{ExpressID: wallID, TypeName: "IFCLOCALPLACEMENT", Values: []decode.Value{
		decode.Null(), decode.Ref(axisID),
	}})

	places := placement.NewResolver(src, table)

	qb := store.NewQuantityBuilder()
	qb.Add(store.QuantityRow{EntityID: wallID, Type: store.QuantityLength, Value: 4.0, Formula: -1})
	quantities := qb.Build()

	return places, quantities
}

func TestBoundingBoxCentersOnPlacementWithDefaultExtent(t *testing.T) {
	places, quantities := buildPlacedFixture(t)
	g := NewGenerator(places, quantities)

	box, err := g.BoundingBox(localPlacemID)
	require.NoError(t, err)

	// Centered on the resolved placement origin (5,2,1); the quantity
	// table is keyed by wallID, not the placement's own express id, so
	// sizing falls back to DefaultHalfExtent.
	half := DefaultHalfExtent
	assert.InDelta(t, 5-half, box.Min.X, 1e-9)
	assert.InDelta(t, 5+half, box.Max.X, 1e-9)
}

func TestBoundingBoxSizedFromQuantity(t *testing.T) {
	places, quantities := buildPlacedFixture(t)
	g := NewGenerator(places, quantities)

	box, err := g.BoundingBox(wallID)
	require.NoError(t, err)
	assert.InDelta(t, 5-2.0, box.Min.X, 1e-9)
	assert.InDelta(t, 5+2.0, box.Max.X, 1e-9)
}

func TestLOD0ProducesBoxMesh(t *testing.T) {
	places, quantities := buildPlacedFixture(t)
	g := NewGenerator(places, quantities)

	mesh, box, err := g.LOD0(localPlacemID)
	require.NoError(t, err)
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.False(t, box.IsEmpty())
}

func TestLOD1PrefersPartialMeshBounds(t *testing.T) {
	places, quantities := buildPlacedFixture(t)
	g := NewGenerator(places, quantities)

	partial := geometry.Mesh{
		Positions: []geomath.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}},
	}
	mesh, failed := g.LOD1(wallID, "IFCWALL", partial, "boolean clip failed")
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Equal(t, uint32(wallID), failed.ExpressID)
	assert.Equal(t, "boolean clip failed", failed.Reason)
	assert.InDelta(t, -1.0, failed.Box.Min.X, 1e-9)
	assert.InDelta(t, 1.0, failed.Box.Max.X, 1e-9)
}

func TestLOD1FallsBackToPlacementWhenNoPartialMesh(t *testing.T) {
	places, quantities := buildPlacedFixture(t)
	g := NewGenerator(places, quantities)

	mesh, failed := g.LOD1(localPlacemID, "IFCDOOR", geometry.Mesh{}, "unsupported representation")
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.False(t, failed.Box.IsEmpty())
}

func TestBoxMeshIsWellFormed(t *testing.T) {
	box := geomath.AABB{Min: geomath.Vec3{X: -1, Y: -1, Z: -1}, Max: geomath.Vec3{X: 1, Y: 1, Z: 1}}
	mesh := BoxMesh(box)
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Equal(t, len(mesh.Positions), len(mesh.Normals))
	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), len(mesh.Positions))
	}
}
