package geometry

import (
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSweptDiskPath wires a straight 2-point polyline directrix with a
// solid (no inner radius) circular cross-section.
func buildSweptDiskPath(store *rawmodel.Store, radius float64) {
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 5)})

	polylineValues := make([]decode.Value, idxPolylinePoints+1)
	for i := range polylineValues {
		polylineValues[i] = decode.Null()
	}
	polylineValues[idxPolylinePoints] = decode.List([]decode.Value{decode.Ref(1), decode.Ref(2)})
	store.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCPOLYLINE", Values: polylineValues})

	v := make([]decode.Value, idxSweptDiskRadius+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxSweptDiskDirectrix] = decode.Ref(10)
	v[idxSweptDiskRadius] = decode.Real(radius)
	store.Add(rawmodel.Entity{ExpressID: 100, TypeName: "IFCSWEPTDISKSOLID", Values: v})
}

func TestProcessSweptDiskSolidBuildsClosedTube(t *testing.T) {
	store := rawmodel.NewStore()
	buildSweptDiskPath(store, 0.1)

	p := newTestProcessor(store)
	e, ok := store.Entity(100)
	require.True(t, ok)
	mesh, err := p.processSweptDiskSolid(e)
	require.NoError(t, err)
	assert.False(t, mesh.IsEmpty())
	for _, n := range mesh.Normals {
		assert.True(t, n.IsFinite())
	}
}

func TestProcessSweptDiskSolidMissingRadiusFails(t *testing.T) {
	store := rawmodel.NewStore()
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 5)})
	polylineValues := make([]decode.Value, idxPolylinePoints+1)
	for i := range polylineValues {
		polylineValues[i] = decode.Null()
	}
	polylineValues[idxPolylinePoints] = decode.List([]decode.Value{decode.Ref(1), decode.Ref(2)})
	store.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCPOLYLINE", Values: polylineValues})

	v := make([]decode.Value, idxSweptDiskDirectrix+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxSweptDiskDirectrix] = decode.Ref(10)
	store.Add(rawmodel.Entity{ExpressID: 100, TypeName: "IFCSWEPTDISKSOLID", Values: v})

	p := newTestProcessor(store)
	e, _ := store.Entity(100)
	_, err := p.processSweptDiskSolid(e)
	assert.Error(t, err)
}

func TestPolyline3DRejectsNonPolylineDirectrix(t *testing.T) {
	store := rawmodel.NewStore()
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCCIRCLE", Values: nil})
	_, err := polyline3D(store, 1, 1.0)
	assert.Error(t, err)
}
