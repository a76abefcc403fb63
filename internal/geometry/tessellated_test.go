package geometry

import (
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCoordList(store *rawmodel.Store, id uint32, rows ...[3]float64) {
	items := make([]decode.Value, len(rows))
	for i, r := range rows {
		items[i] = realList(r[0], r[1], r[2])
	}
	v := make([]decode.Value, idxCoordList+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxCoordList] = decode.List(items)
	store.Add(rawmodel.Entity{ExpressID: id, TypeName: "IFCCARTESIANPOINTLIST3D", Values: v})
}

func TestProcessTriangulatedFaceSetBuildsOneTriangle(t *testing.T) {
	store := rawmodel.NewStore()
	buildCoordList(store, 1, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})

	v := make([]decode.Value, idxTriangulatedCoordIndex+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxTessellatedCoordinates] = decode.Ref(1)
	v[idxTriangulatedCoordIndex] = decode.List([]decode.Value{
		decode.List([]decode.Value{decode.Real(1), decode.Real(2), decode.Real(3)}),
	})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCTRIANGULATEDFACESET", Values: v})

	p := newTestProcessor(store)
	e, ok := store.Entity(2)
	require.True(t, ok)
	mesh, err := p.processTriangulatedFaceSet(e)
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())
}

func TestProcessTriangulatedFaceSetMissingCoordIndexFails(t *testing.T) {
	store := rawmodel.NewStore()
	buildCoordList(store, 1, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})
	v := make([]decode.Value, idxTessellatedCoordinates+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxTessellatedCoordinates] = decode.Ref(1)
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCTRIANGULATEDFACESET", Values: v})

	p := newTestProcessor(store)
	e, _ := store.Entity(2)
	_, err := p.processTriangulatedFaceSet(e)
	assert.Error(t, err)
}

func TestProcessPolygonalFaceSetTriangulatesQuadFace(t *testing.T) {
	store := rawmodel.NewStore()
	buildCoordList(store, 1, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}, [3]float64{0, 1, 0})

	faceValues := make([]decode.Value, idxIndexedPolygonalFace+1)
	for i := range faceValues {
		faceValues[i] = decode.Null()
	}
	faceValues[idxIndexedPolygonalFace] = decode.List([]decode.Value{
		decode.Real(1), decode.Real(2), decode.Real(3), decode.Real(4),
	})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCINDEXEDPOLYGONALFACE", Values: faceValues})

	v := make([]decode.Value, idxPolygonalFaces+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxTessellatedCoordinates] = decode.Ref(1)
	v[idxPolygonalFaces] = decode.List([]decode.Value{decode.Ref(2)})
	store.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCPOLYGONALFACESET", Values: v})

	p := newTestProcessor(store)
	e, ok := store.Entity(3)
	require.True(t, ok)
	mesh, err := p.processPolygonalFaceSet(e)
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.TriangleCount())
}

func TestIndexValueConvertsOneBasedToZeroBased(t *testing.T) {
	i, ok := indexValue(decode.Real(1))
	require.True(t, ok)
	assert.Equal(t, 0, i)
}
