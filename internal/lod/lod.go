// Package lod implements the bounding-box preview and degraded-mode
// generator (C14): LOD0 gives every element a cheap placeholder box ahead
// of full geometry streaming in, LOD1 gives a failed element a box sized
// from whatever partial geometry it managed to resolve (or, failing that,
// from its placement and a quantity hint) instead of dropping it silently.
package lod

import (
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/placement"
	"github.com/arx-os/ifclite/internal/store"
)

// DefaultHalfExtent sizes a fallback box when neither a resolved quantity
// nor any partial geometry gives a better estimate.
const DefaultHalfExtent = 0.25

// FailedElement records an element that couldn't fully resolve, carrying
// enough to render a degraded-mode placeholder in its place (spec §10
// supplemented feature: failures are a first-class list, not just a log
// line).
type FailedElement struct {
	ExpressID uint32
	TypeName  string
	Reason    string
	Box       geomath.AABB
}

// Generator produces placeholder boxes from the same placement resolver
// and quantity table the full geometry pass already built.
type Generator struct {
	places     *placement.Resolver
	quantities *store.QuantityTable
}

func NewGenerator(places *placement.Resolver, quantities *store.QuantityTable) *Generator {
	return &Generator{places: places, quantities: quantities}
}

// BoundingBox resolves expressID's placement origin and sizes a cube
// around it from the first positive Length quantity it carries, falling
// back to DefaultHalfExtent.
func (g *Generator) BoundingBox(expressID uint32) (geomath.AABB, error) {
	m, err := g.places.ResolvePlacement(expressID)
	if err != nil {
		return geomath.AABB{}, err
	}
	origin := m.Translation()

	half := DefaultHalfExtent
	if g.quantities != nil {
		for _, q := range g.quantities.ByEntity(expressID) {
			if q.Type == store.QuantityLength && q.Value > 0 {
				half = q.Value / 2
				break
			}
		}
	}
	halfVec := geomath.Vec3{X: half, Y: half, Z: half}
	return geomath.AABB{Min: origin.Sub(halfVec), Max: origin.Add(halfVec)}, nil
}

// LOD0 builds a placeholder box mesh for expressID, for fast preview ahead
// of the full mesh stream.
func (g *Generator) LOD0(expressID uint32) (geometry.Mesh, geomath.AABB, error) {
	box, err := g.BoundingBox(expressID)
	if err != nil {
		return geometry.Mesh{}, geomath.AABB{}, err
	}
	return BoxMesh(box), box, nil
}

// LOD1 builds a placeholder box for an element the geometry processor
// couldn't fully resolve. It prefers the bounding box of whatever partial
// mesh did resolve (so the box at least matches the real footprint);
// failing that it falls back to the element's placement-derived box, and
// failing that to a box of DefaultHalfExtent centered on the origin.
func (g *Generator) LOD1(expressID uint32, typeName string, partial geometry.Mesh, reason string) (geometry.Mesh, FailedElement) {
	box := aabbOf(partial)
	if box.IsEmpty() {
		if resolved, err := g.BoundingBox(expressID); err == nil {
			box = resolved
		} else {
			half := geomath.Vec3{X: DefaultHalfExtent, Y: DefaultHalfExtent, Z: DefaultHalfExtent}
			box = geomath.AABB{Min: half.Scale(-1), Max: half}
		}
	}
	return BoxMesh(box), FailedElement{ExpressID: expressID, TypeName: typeName, Reason: reason, Box: box}
}

func aabbOf(mesh geometry.Mesh) geomath.AABB {
	box := geomath.EmptyAABB()
	for _, p := range mesh.Positions {
		box = box.Expand(p)
	}
	return box
}

// BoxMesh builds a 12-triangle, flat-shaded box covering box, one quad
// (two triangles) per face so each face keeps its own normal.
func BoxMesh(box geomath.AABB) geometry.Mesh {
	min, max := box.Min, box.Max
	corners := [8]geomath.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, // 0
		{X: max.X, Y: min.Y, Z: min.Z}, // 1
		{X: max.X, Y: max.Y, Z: min.Z}, // 2
		{X: min.X, Y: max.Y, Z: min.Z}, // 3
		{X: min.X, Y: min.Y, Z: max.Z}, // 4
		{X: max.X, Y: min.Y, Z: max.Z}, // 5
		{X: max.X, Y: max.Y, Z: max.Z}, // 6
		{X: min.X, Y: max.Y, Z: max.Z}, // 7
	}

	type face struct {
		a, b, c, d int
		normal     geomath.Vec3
	}
	faces := [6]face{
		{0, 1, 2, 3, geomath.Vec3{Z: -1}}, // bottom
		{4, 7, 6, 5, geomath.Vec3{Z: 1}},  // top
		{0, 4, 5, 1, geomath.Vec3{Y: -1}}, // front
		{2, 6, 7, 3, geomath.Vec3{Y: 1}},  // back
		{1, 5, 6, 2, geomath.Vec3{X: 1}},  // right
		{3, 7, 4, 0, geomath.Vec3{X: -1}}, // left
	}

	var mesh geometry.Mesh
	for _, f := range faces {
		mesh.AppendTriangle(corners[f.a], corners[f.b], corners[f.c], f.normal)
		mesh.AppendTriangle(corners[f.a], corners[f.c], corners[f.d], f.normal)
	}
	return mesh
}
