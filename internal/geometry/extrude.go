package geometry

import (
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxSweptAreaSweptArea = mustIndex("IFCSWEPTAREASOLID", "SweptArea")
	idxSweptAreaPosition  = mustIndex("IFCSWEPTAREASOLID", "Position")

	idxExtrudedDirection = mustIndex("IFCEXTRUDEDAREASOLID", "ExtrudedDirection")
	idxExtrudedDepth     = mustIndex("IFCEXTRUDEDAREASOLID", "Depth")
)

// processExtrudedAreaSolid triangulates SweptArea for the two end caps and
// connects the cap boundaries (outer ring plus any holes) with side-wall
// quads along ExtrudedDirection*Depth.
func (p *Processor) processExtrudedAreaSolid(e rawmodel.Entity) (Mesh, error) {
	profileRef, ok := refAttr(e, idxSweptAreaSweptArea)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "extruded solid missing SweptArea")
	}
	profile, err := p.resolveScaledProfile(profileRef)
	if err != nil {
		return Mesh{}, err
	}

	dirRef, ok := refAttr(e, idxExtrudedDirection)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "extruded solid missing ExtrudedDirection")
	}
	dir, ok := direction3D(p.src, dirRef)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "extruded solid has unresolvable ExtrudedDirection")
	}
	depth, ok := realAttr(e, idxExtrudedDepth)
	if !ok || depth <= 0 {
		return Mesh{}, errorf(e.ExpressID, "extruded solid missing positive Depth")
	}
	depth *= p.scale

	local := geomath.Identity()
	if posRef, ok := refAttr(e, idxSweptAreaPosition); ok {
		if m, err := p.places.ResolvePlacement(posRef); err == nil {
			local = m
		}
	}

	points, indices, ok := Triangulate(profile)
	if !ok || len(indices) == 0 {
		return Mesh{}, errorf(e.ExpressID, "extruded solid profile failed to triangulate")
	}

	offset := dir.Scale(depth)
	var mesh Mesh
	bottomNormal := local.MulDirection(geomath.Vec3{X: 0, Y: 0, Z: -1}).Normalize()
	topNormal := bottomNormal.Scale(-1)

	for i := 0; i+2 < len(indices); i += 3 {
		a := to3D(points[indices[i]])
		b := to3D(points[indices[i+1]])
		c := to3D(points[indices[i+2]])
		mesh.AppendTriangle(local.MulPoint(a), local.MulPoint(b), local.MulPoint(c), bottomNormal)
		ta, tb, tc := a.Add(offset), b.Add(offset), c.Add(offset)
		mesh.AppendTriangle(local.MulPoint(tc), local.MulPoint(tb), local.MulPoint(ta), topNormal)
	}

	appendSideWalls(&mesh, local, profile.Outer, offset, false)
	for _, hole := range profile.Holes {
		appendSideWalls(&mesh, local, hole, offset, true)
	}
	return mesh, nil
}

func to3D(v geomath.Vec2) geomath.Vec3 { return geomath.Vec3{X: v.X, Y: v.Y, Z: 0} }

// appendSideWalls builds the ruled-surface quads connecting a (bottom) ring
// to ring+offset (top), split into triangles. holeRing reverses winding so
// the hole's side walls face inward, matching the solid's interior.
func appendSideWalls(mesh *Mesh, local geomath.Mat4, ring []geomath.Vec2, offset geomath.Vec3, holeRing bool) {
	n := len(ring)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b0, b1 := to3D(ring[i]), to3D(ring[j])
		t0, t1 := b0.Add(offset), b1.Add(offset)
		normal := local.MulDirection(wallNormal(b0, b1, offset)).Normalize()
		if holeRing {
			normal = normal.Scale(-1)
			mesh.AppendTriangle(local.MulPoint(b1), local.MulPoint(b0), local.MulPoint(t0), normal)
			mesh.AppendTriangle(local.MulPoint(b1), local.MulPoint(t0), local.MulPoint(t1), normal)
			continue
		}
		mesh.AppendTriangle(local.MulPoint(b0), local.MulPoint(b1), local.MulPoint(t1), normal)
		mesh.AppendTriangle(local.MulPoint(b0), local.MulPoint(t1), local.MulPoint(t0), normal)
	}
}

func wallNormal(b0, b1 geomath.Vec3, offset geomath.Vec3) geomath.Vec3 {
	edge := b1.Sub(b0)
	return edge.Cross(offset).Normalize()
}

func direction3D(src *rawmodel.Store, id uint32) (geomath.Vec3, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCDIRECTION" {
		return geomath.Vec3{}, false
	}
	coords, ok := listAttr(e, idxDirectionRatios)
	if !ok || len(coords) < 3 {
		if ok && len(coords) == 2 {
			x, okx := realFromValue(coords[0])
			y, oky := realFromValue(coords[1])
			if okx && oky {
				return geomath.Vec3{X: x, Y: y, Z: 0}.Normalize(), true
			}
		}
		return geomath.Vec3{}, false
	}
	x, okx := realFromValue(coords[0])
	y, oky := realFromValue(coords[1])
	z, okz := realFromValue(coords[2])
	if !okx || !oky || !okz {
		return geomath.Vec3{}, false
	}
	return geomath.Vec3{X: x, Y: y, Z: z}.Normalize(), true
}
