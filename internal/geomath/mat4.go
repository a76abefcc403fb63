package geomath

// Mat4 is a column-major 4x4 affine transform: m[col*4+row].
type Mat4 [16]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Basis builds a column-major basis+translation matrix from an orthonormal
// (x, y, z) frame and an origin, as used by the placement resolver's
// Axis2Placement construction (spec §4.6).
func Basis(x, y, z, origin Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		origin.X, origin.Y, origin.Z, 1,
	}
}

// Mul composes two column-major 4x4 matrices: result = a * b, matching the
// placement chain's `parent * local` composition order.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// MulPoint transforms a point (w=1) by m.
func (a Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		X: a[0]*v.X + a[4]*v.Y + a[8]*v.Z + a[12],
		Y: a[1]*v.X + a[5]*v.Y + a[9]*v.Z + a[13],
		Z: a[2]*v.X + a[6]*v.Y + a[10]*v.Z + a[14],
	}
}

// MulDirection transforms a direction (w=0) by m, ignoring translation.
func (a Mat4) MulDirection(v Vec3) Vec3 {
	return Vec3{
		X: a[0]*v.X + a[4]*v.Y + a[8]*v.Z,
		Y: a[1]*v.X + a[5]*v.Y + a[9]*v.Z,
		Z: a[2]*v.X + a[6]*v.Y + a[10]*v.Z,
	}
}

// Translation extracts the translation column.
func (a Mat4) Translation() Vec3 {
	return Vec3{a[12], a[13], a[14]}
}

// ScaledTranslation returns a matrix with its translation column scaled by
// f, leaving the (already unit-length) basis vectors untouched — basis
// vectors encode direction, only the origin is a length (spec §4.6).
func (a Mat4) ScaledTranslation(f float64) Mat4 {
	r := a
	r[12] *= f
	r[13] *= f
	r[14] *= f
	return r
}
