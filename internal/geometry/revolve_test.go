package geometry

import (
	"math"
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartesianPointValues(x, y, z float64) []decode.Value {
	return []decode.Value{realList(x, y, z)}
}

// buildRevolvedQuarterDisk wires a 1x1 rectangle profile revolved a quarter
// turn around the Z axis through the origin.
func buildRevolvedQuarterDisk(store *rawmodel.Store) {
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCRECTANGLEPROFILEDEF", Values: rectangleValues(1.0, 1.0)})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCDIRECTION", Values: direction3DValues(0, 0, 1)})

	axisValues := make([]decode.Value, idxAxis1Axis+1)
	for i := range axisValues {
		axisValues[i] = decode.Null()
	}
	axisValues[idxAxis1Location] = decode.Ref(2)
	axisValues[idxAxis1Axis] = decode.Ref(3)
	store.Add(rawmodel.Entity{ExpressID: 4, TypeName: "IFCAXIS1PLACEMENT", Values: axisValues})

	v := make([]decode.Value, idxRevolvedAngle+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxSweptAreaSweptArea] = decode.Ref(1)
	v[idxRevolvedAxis] = decode.Ref(4)
	v[idxRevolvedAngle] = decode.Real(math.Pi / 2)
	store.Add(rawmodel.Entity{ExpressID: 100, TypeName: "IFCREVOLVEDAREASOLID", Values: v})
}

func TestProcessRevolvedAreaSolidProducesClosedCaps(t *testing.T) {
	store := rawmodel.NewStore()
	buildRevolvedQuarterDisk(store)
	p := newTestProcessor(store)

	e, ok := store.Entity(100)
	require.True(t, ok)
	mesh, err := p.processRevolvedAreaSolid(e)
	require.NoError(t, err)
	assert.False(t, mesh.IsEmpty())
	for _, n := range mesh.Normals {
		assert.True(t, n.IsFinite())
	}
	for _, pos := range mesh.Positions {
		assert.True(t, pos.IsFinite())
	}
}

func TestProcessRevolvedAreaSolidMissingAngleFails(t *testing.T) {
	store := rawmodel.NewStore()
	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCRECTANGLEPROFILEDEF", Values: rectangleValues(1.0, 1.0)})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCCARTESIANPOINT", Values: cartesianPointValues(0, 0, 0)})
	store.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCDIRECTION", Values: direction3DValues(0, 0, 1)})
	axisValues := make([]decode.Value, idxAxis1Axis+1)
	for i := range axisValues {
		axisValues[i] = decode.Null()
	}
	axisValues[idxAxis1Location] = decode.Ref(2)
	axisValues[idxAxis1Axis] = decode.Ref(3)
	store.Add(rawmodel.Entity{ExpressID: 4, TypeName: "IFCAXIS1PLACEMENT", Values: axisValues})

	v := make([]decode.Value, idxRevolvedAxis+1)
	for i := range v {
		v[i] = decode.Null()
	}
	v[idxSweptAreaSweptArea] = decode.Ref(1)
	v[idxRevolvedAxis] = decode.Ref(4)
	store.Add(rawmodel.Entity{ExpressID: 100, TypeName: "IFCREVOLVEDAREASOLID", Values: v})

	p := newTestProcessor(store)
	e, _ := store.Entity(100)
	_, err := p.processRevolvedAreaSolid(e)
	assert.Error(t, err)
}

func TestRevolvePointRotatesAroundAxis(t *testing.T) {
	origin := geomath.Vec3{}
	axis := geomath.Vec3{Z: 1}
	rotated := revolvePoint(geomath.Vec2{X: 1, Y: 0}, origin, axis, math.Pi/2)
	assert.InDelta(t, 0, rotated.X, 1e-9)
	assert.InDelta(t, 1, rotated.Y, 1e-9)
}
