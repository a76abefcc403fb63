package geomath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Z, 1e-9)
}

func TestVec3NormalizeZero(t *testing.T) {
	assert.Equal(t, Zero3, Zero3.Normalize())
}

func TestCrossOrthogonality(t *testing.T) {
	c := UnitX.Cross(UnitY)
	assert.InDelta(t, 0.0, c.Sub(UnitZ).Length(), 1e-9)
}

func TestMat4IdentityMulPoint(t *testing.T) {
	m := Identity()
	p := Vec3{1, 2, 3}
	assert.Equal(t, p, m.MulPoint(p))
}

func TestMat4Composition(t *testing.T) {
	// translate by (1,0,0) then by (0,1,0): composed should move a point by (1,1,0)
	t1 := Identity()
	t1[12] = 1
	t2 := Identity()
	t2[13] = 1
	composed := t1.Mul(t2)
	p := composed.MulPoint(Vec3{0, 0, 0})
	assert.InDelta(t, 1.0, p.X, 1e-9)
	assert.InDelta(t, 1.0, p.Y, 1e-9)
}

func TestBasisUnitFrameIsIdentity(t *testing.T) {
	m := Basis(UnitX, UnitY, UnitZ, Zero3)
	assert.Equal(t, Identity(), m)
}

func TestAABBExpandCenter(t *testing.T) {
	b := EmptyAABB()
	assert.True(t, b.IsEmpty())
	b = b.Expand(Vec3{1, 2, 3}).Expand(Vec3{-1, 0, 5})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3{-1, 0, 3}, b.Min)
	assert.Equal(t, Vec3{1, 2, 5}, b.Max)
	assert.Equal(t, Vec3{0, 1, 4}, b.Center())
}

func TestAABBContains(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	assert.True(t, b.Contains(Vec3{0.5, 0.5, 0.5}))
	assert.False(t, b.Contains(Vec3{2, 0, 0}))
}

func TestMaxAxisExtent(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{5, 1, 1}}
	assert.Equal(t, 5.0, b.MaxAxisExtent())
}

func TestPolygonAreaSquare(t *testing.T) {
	sq := []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.InDelta(t, 1.0, PolygonAreaAbs(sq), 1e-9)
	assert.True(t, IsCCW(sq))
}

func TestPointInPolygon(t *testing.T) {
	sq := []Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	assert.True(t, PointInPolygon(Vec2{1, 1}, sq))
	assert.False(t, PointInPolygon(Vec2{3, 3}, sq))
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, Vec3{1, 2, 3}.IsFinite())
	assert.False(t, Vec3{math.NaN(), 0, 0}.IsFinite())
	assert.False(t, Vec3{math.Inf(1), 0, 0}.IsFinite())
}
