// Package geometry implements the geometry processor (C9): resolving an
// element's Representation into a local-space triangle mesh, dispatching
// per item type and per profile type, with a per-item failure policy that
// keeps the element partially represented rather than dropping it.
package geometry

import "github.com/arx-os/ifclite/internal/geomath"

// Mesh is a local-space triangle soup: one normal per position, indices
// grouped in threes.
type Mesh struct {
	Positions []geomath.Vec3
	Normals   []geomath.Vec3
	Indices   []uint32
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// AppendTriangle appends one flat-shaded triangle, duplicating vertices so
// each triangle gets its own normal (spec §4.8: "shared vertices ... may be
// duplicated per face to preserve flat shading").
func (m *Mesh) AppendTriangle(a, b, c, normal geomath.Vec3) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, a, b, c)
	m.Normals = append(m.Normals, normal, normal, normal)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// AppendIndexed appends positions/normals verbatim and indices offset by
// the mesh's current vertex count, for processors (tessellated face sets)
// that already carry shared-vertex indexing.
func (m *Mesh) AppendIndexed(positions, normals []geomath.Vec3, indices []uint32) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, positions...)
	m.Normals = append(m.Normals, normals...)
	for _, idx := range indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Merge appends o's triangles onto m, offsetting indices.
func (m *Mesh) Merge(o Mesh) {
	m.AppendIndexed(o.Positions, o.Normals, o.Indices)
}

// Transform carries every position and normal from whatever local space
// they were built in into the space t maps to (C7's resolved world
// matrix), in place. Normals use MulDirection and are re-normalized since
// a degenerate placement basis could otherwise leave them unnormalized.
func (m *Mesh) Transform(t geomath.Mat4) {
	for i := range m.Positions {
		m.Positions[i] = t.MulPoint(m.Positions[i])
	}
	for i := range m.Normals {
		m.Normals[i] = t.MulDirection(m.Normals[i]).Normalize()
	}
}

// IsEmpty reports whether the mesh carries no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.Indices) == 0 }

// DropDegenerate removes triangles whose area is below eps or that
// reference a non-finite position, per spec §4.8's boolean-result cleanup
// and the general CorruptVertex policy.
func (m *Mesh) DropDegenerate(eps float64) {
	var positions, normals []geomath.Vec3
	var indices []uint32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
			continue
		}
		area := b.Sub(a).Cross(c.Sub(a)).Length() / 2
		if area < eps {
			continue
		}
		base := uint32(len(positions))
		positions = append(positions, a, b, c)
		normals = append(normals, m.Normals[ia], m.Normals[ib], m.Normals[ic])
		indices = append(indices, base, base+1, base+2)
	}
	m.Positions, m.Normals, m.Indices = positions, normals, indices
}

// FailedItem records a per-item failure that did not abort the owning
// element (spec §4.8 failure policy).
type FailedItem struct {
	ExpressID uint32
	Reason    string
}

// ElementResult is one element's resolved geometry: a merged mesh plus any
// per-item failures. Partial is set when at least one item failed but the
// element still carries triangles from the items that succeeded.
type ElementResult struct {
	ExpressID uint32
	Mesh      Mesh
	Color     RGBA
	Failed    []FailedItem
	Partial   bool
}

// RGBA is a resolved display color with transparency, defaulting to an
// opaque neutral gray when no style resolves (spec §4.8 color fallback).
type RGBA struct {
	R, G, B, A float64
}

// DefaultColor is applied when no IfcStyledItem chain resolves a color for
// an element's representation.
var DefaultColor = RGBA{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
