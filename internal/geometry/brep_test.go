package geometry

import (
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangleShell wires a single-face closed shell: one triangular
// IfcFace bounded by an IfcFaceOuterBound/IfcPolyLoop over 3 points.
func buildTriangleShell(store *rawmodel.Store, shellID uint32) {
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(1, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 1, 0)})

	loopValues := make([]decode.Value, idxPolyLoopPolygon+1)
	for i := range loopValues {
		loopValues[i] = decode.Null()
	}
	loopValues[idxPolyLoopPolygon] = decode.List([]decode.Value{decode.Ref(1), decode.Ref(2), decode.Ref(3)})
	store.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCPOLYLOOP", Values: loopValues})

	boundValues := make([]decode.Value, idxFaceBoundOrient+1)
	for i := range boundValues {
		boundValues[i] = decode.Null()
	}
	boundValues[idxFaceBoundBound] = decode.Ref(10)
	boundValues[idxFaceBoundOrient] = decode.Bool(true)
	store.Add(rawmodel.Entity{ExpressID: 11, TypeName: "IFCFACEOUTERBOUND", Values: boundValues})

	faceValues := make([]decode.Value, idxFaceBounds+1)
	for i := range faceValues {
		faceValues[i] = decode.Null()
	}
	faceValues[idxFaceBounds] = decode.List([]decode.Value{decode.Ref(11)})
	store.Add(rawmodel.Entity{ExpressID: 12, TypeName: "IFCFACE", Values: faceValues})

	shellValues := make([]decode.Value, idxConnectedFaces+1)
	for i := range shellValues {
		shellValues[i] = decode.Null()
	}
	shellValues[idxConnectedFaces] = decode.List([]decode.Value{decode.Ref(12)})
	store.Add(rawmodel.Entity{ExpressID: shellID, TypeName: "IFCCLOSEDSHELL", Values: shellValues})
}

func TestProcessFacetedBrepResolvesOuterAndTriangulates(t *testing.T) {
	store := rawmodel.NewStore()
	buildTriangleShell(store, 100)

	outerValues := make([]decode.Value, idxManifoldOuter+1)
	for i := range outerValues {
		outerValues[i] = decode.Null()
	}
	outerValues[idxManifoldOuter] = decode.Ref(100)
	store.Add(rawmodel.Entity{ExpressID: 200, TypeName: "IFCFACETEDBREP", Values: outerValues})

	p := newTestProcessor(store)
	e, ok := store.Entity(200)
	require.True(t, ok)
	mesh, err := p.processFacetedBrep(e)
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())
}

func TestProcessFacetedBrepAcceptsBareClosedShell(t *testing.T) {
	store := rawmodel.NewStore()
	buildTriangleShell(store, 300)

	p := newTestProcessor(store)
	e, ok := store.Entity(300)
	require.True(t, ok)
	mesh, err := p.processFacetedBrep(e)
	require.NoError(t, err)
	assert.False(t, mesh.IsEmpty())
}

func TestProcessFacetedBrepMissingOuterFails(t *testing.T) {
	store := rawmodel.NewStore()
	store.Add(rawmodel.Entity{ExpressID: 200, TypeName: "IFCFACETEDBREP", Values: nil})

	p := newTestProcessor(store)
	e, _ := store.Entity(200)
	_, err := p.processFacetedBrep(e)
	assert.Error(t, err)
}

func TestTriangulateFace3DPlanarTriangle(t *testing.T) {
	outer := []geomath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	points, indices, ok := triangulateFace3D(outer, nil)
	require.True(t, ok)
	assert.Len(t, points, 3)
	assert.Len(t, indices, 3)
}

func TestFaceNormalNewellPointsAlongZForFlatRing(t *testing.T) {
	ring := []geomath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}}
	n := faceNormalNewell(ring)
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, 0, n.Y, 1e-9)
	assert.InDelta(t, 1, n.Z*n.Z, 1e-9)
}
