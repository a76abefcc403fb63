package placement

import (
	"testing"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realList(vals ...float64) decode.Value {
	items := make([]decode.Value, len(vals))
	for i, v := range vals {
		items[i] = decode.Real(v)
	}
	return decode.List(items)
}

func point(store *rawmodel.Store, id uint32, x, y, z float64) {
	store.Add(rawmodel.Entity{ExpressID: id, TypeName: "IFCCARTESIANPOINT", Values: []decode.Value{realList(x, y, z)}})
}

func direction(store *rawmodel.Store, id uint32, x, y, z float64) {
	store.Add(rawmodel.Entity{ExpressID: id, TypeName: "IFCDIRECTION", Values: []decode.Value{realList(x, y, z)}})
}

func TestResolveAxis2Placement3DDefaultAxesIsIdentity(t *testing.T) {
	store := rawmodel.NewStore()
	point(store, 1, 0, 0, 0)
	direction(store, 2, 0, 0, 1)
	direction(store, 3, 1, 0, 0)
	store.Add(rawmodel.Entity{
		ExpressID: 10,
		TypeName:  "IFCAXIS2PLACEMENT3D",
		Values:    []decode.Value{decode.Ref(1), decode.Ref(2), decode.Ref(3)},
	})

	r := NewResolver(store, intern.New())
	m, err := r.ResolvePlacement(10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.UnitScale(), 1e-9)
	assert.Equal(t, geomath.Identity(), m)
}

func TestResolveAxis2Placement3DTranslatedAndRotated(t *testing.T) {
	store := rawmodel.NewStore()
	point(store, 1, 5, 6, 7)
	// Axis = +X, RefDirection = +Y: Gram-Schmidt yields Z=+X, Y=(Z x RefDir)=+Z, X=(Y x Z)=+Y.
	direction(store, 2, 1, 0, 0)
	direction(store, 3, 0, 1, 0)
	store.Add(rawmodel.Entity{
		ExpressID: 10,
		TypeName:  "IFCAXIS2PLACEMENT3D",
		Values:    []decode.Value{decode.Ref(1), decode.Ref(2), decode.Ref(3)},
	})

	r := NewResolver(store, intern.New())
	m, err := r.ResolvePlacement(10)
	require.NoError(t, err)

	origin := m.Translation()
	assert.InDelta(t, 5.0, origin.X, 1e-9)
	assert.InDelta(t, 6.0, origin.Y, 1e-9)
	assert.InDelta(t, 7.0, origin.Z, 1e-9)

	zAxis := m.MulDirection(geomath.UnitZ)
	assert.InDelta(t, 1.0, zAxis.X, 1e-9)
	assert.InDelta(t, 0.0, zAxis.Y, 1e-9)
	assert.InDelta(t, 0.0, zAxis.Z, 1e-9)
}

func TestResolveLocalPlacementChainComposition(t *testing.T) {
	store := rawmodel.NewStore()
	point(store, 1, 0, 0, 0)
	direction(store, 2, 0, 0, 1)
	direction(store, 3, 1, 0, 0)
	store.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCAXIS2PLACEMENT3D", Values: []decode.Value{decode.Ref(1), decode.Ref(2), decode.Ref(3)}})

	point(store, 4, 1, 0, 0)
	store.Add(rawmodel.Entity{ExpressID: 11, TypeName: "IFCAXIS2PLACEMENT3D", Values: []decode.Value{decode.Ref(4), decode.Null(), decode.Null()}})

	point(store, 5, 0, 2, 0)
	store.Add(rawmodel.Entity{ExpressID: 12, TypeName: "IFCAXIS2PLACEMENT3D", Values: []decode.Value{decode.Ref(5), decode.Null(), decode.Null()}})

	// A: root local placement, no parent, relative placement 10.
	store.Add(rawmodel.Entity{ExpressID: 20, TypeName: "IFCLOCALPLACEMENT", Values: []decode.Value{decode.Null(), decode.Ref(10)}})
	// B: local placement parented to A, relative placement 11.
	store.Add(rawmodel.Entity{ExpressID: 21, TypeName: "IFCLOCALPLACEMENT", Values: []decode.Value{decode.Ref(20), decode.Ref(11)}})
	// C: local placement parented to B, relative placement 12.
	store.Add(rawmodel.Entity{ExpressID: 22, TypeName: "IFCLOCALPLACEMENT", Values: []decode.Value{decode.Ref(21), decode.Ref(12)}})

	r := NewResolver(store, intern.New())

	ab, err := r.ResolvePlacement(21)
	require.NoError(t, err)
	abc, err := r.ResolvePlacement(22)
	require.NoError(t, err)
	localC, err := r.ResolvePlacement(12)
	require.NoError(t, err)

	want := ab.Mul(localC)
	assert.InDelta(t, want.Translation().X, abc.Translation().X, 1e-9)
	assert.InDelta(t, want.Translation().Y, abc.Translation().Y, 1e-9)
	assert.InDelta(t, want.Translation().Z, abc.Translation().Z, 1e-9)
}

func TestResolvePlacementMemoizes(t *testing.T) {
	store := rawmodel.NewStore()
	point(store, 1, 0, 0, 0)
	direction(store, 2, 0, 0, 1)
	direction(store, 3, 1, 0, 0)
	store.Add(rawmodel.Entity{ExpressID: 10, TypeName: "IFCAXIS2PLACEMENT3D", Values: []decode.Value{decode.Ref(1), decode.Ref(2), decode.Ref(3)}})

	r := NewResolver(store, intern.New())
	m1, err := r.ResolvePlacement(10)
	require.NoError(t, err)
	_, cached := r.cache[10]
	require.True(t, cached)

	m2, err := r.ResolvePlacement(10)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
}

func TestResolveLengthUnitScaleMillimetre(t *testing.T) {
	store := rawmodel.NewStore()
	table := intern.New()
	lengthUnit := table.Intern("LENGTHUNIT")
	milli := table.Intern("MILLI")

	store.Add(rawmodel.Entity{ExpressID: 1, TypeName: "IFCSIUNIT", Values: []decode.Value{decode.Enum(lengthUnit), decode.Enum(milli)}})
	store.Add(rawmodel.Entity{ExpressID: 2, TypeName: "IFCUNITASSIGNMENT", Values: []decode.Value{decode.List([]decode.Value{decode.Ref(1)})}})

	// IfcProject's full flattened attribute list, with UnitsInContext at
	// its schema-resolved index (IfcRoot + ObjectType ahead of it).
	projectValues := make([]decode.Value, unitsInContextIndex+1)
	for i := range projectValues {
		projectValues[i] = decode.Null()
	}
	projectValues[unitsInContextIndex] = decode.Ref(2)
	store.Add(rawmodel.Entity{ExpressID: 3, TypeName: "IFCPROJECT", Values: projectValues})

	scale, ok := ResolveLengthUnitScale(store, table)
	require.True(t, ok)
	assert.InDelta(t, 0.001, scale, 1e-12)
}

func TestResolveLengthUnitScaleDefaultsWithoutProject(t *testing.T) {
	store := rawmodel.NewStore()
	table := intern.New()
	scale, ok := ResolveLengthUnitScale(store, table)
	assert.False(t, ok)
	assert.Equal(t, 1.0, scale)
}
