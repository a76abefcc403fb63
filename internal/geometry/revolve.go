package geometry

import (
	"math"

	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxRevolvedAxis  = mustIndex("IFCREVOLVEDAREASOLID", "Axis")
	idxRevolvedAngle = mustIndex("IFCREVOLVEDAREASOLID", "Angle")

	idxAxis1Location = mustIndex("IFCAXIS1PLACEMENT", "Location")
	idxAxis1Axis     = mustIndex("IFCAXIS1PLACEMENT", "Axis")
)

// minRevolveSegments/maxRevolveSegments bound the per-angle segment count
// (spec §4.8: ceil(angle / (pi/16)) clamped to [8, 64]).
const (
	minRevolveSegments = 8
	maxRevolveSegments = 64
)

// processRevolvedAreaSolid sweeps SweptArea's profile boundary around Axis
// by Angle (radians), building ruled-surface quads between consecutive
// angular steps plus triangulated start/end caps when the sweep is partial.
func (p *Processor) processRevolvedAreaSolid(e rawmodel.Entity) (Mesh, error) {
	profileRef, ok := refAttr(e, idxSweptAreaSweptArea)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "revolved solid missing SweptArea")
	}
	profile, err := p.resolveScaledProfile(profileRef)
	if err != nil {
		return Mesh{}, err
	}
	axisRef, ok := refAttr(e, idxRevolvedAxis)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "revolved solid missing Axis")
	}
	origin, axis, ok := resolveAxis1(p.src, axisRef, p.scale)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "revolved solid has unresolvable Axis")
	}
	angle, ok := realAttr(e, idxRevolvedAngle)
	if !ok || angle <= 0 {
		return Mesh{}, errorf(e.ExpressID, "revolved solid missing positive Angle")
	}

	local := geomath.Identity()
	if posRef, ok := refAttr(e, idxSweptAreaPosition); ok {
		if m, err := p.places.ResolvePlacement(posRef); err == nil {
			local = m
		}
	}

	segments := int(math.Ceil(angle / (math.Pi / 16)))
	if segments < minRevolveSegments {
		segments = minRevolveSegments
	}
	if segments > maxRevolveSegments {
		segments = maxRevolveSegments
	}

	ring := closedRing(profile.Outer)
	var mesh Mesh
	for s := 0; s < segments; s++ {
		t0 := angle * float64(s) / float64(segments)
		t1 := angle * float64(s+1) / float64(segments)
		for i := 0; i+1 < len(ring); i++ {
			a0 := revolvePoint(ring[i], origin, axis, t0)
			a1 := revolvePoint(ring[i+1], origin, axis, t0)
			b0 := revolvePoint(ring[i], origin, axis, t1)
			b1 := revolvePoint(ring[i+1], origin, axis, t1)
			normal := local.MulDirection(b0.Sub(a0).Cross(a1.Sub(a0))).Normalize()
			mesh.AppendTriangle(local.MulPoint(a0), local.MulPoint(a1), local.MulPoint(b1), normal)
			mesh.AppendTriangle(local.MulPoint(a0), local.MulPoint(b1), local.MulPoint(b0), normal)
		}
	}

	if angle < 2*math.Pi-1e-9 {
		points, indices, ok := Triangulate(profile)
		if ok {
			startNormal := local.MulDirection(axis.Scale(-1)).Normalize()
			endNormal := startNormal.Scale(-1)
			for i := 0; i+2 < len(indices); i += 3 {
				a := to3D(points[indices[i]])
				b := to3D(points[indices[i+1]])
				c := to3D(points[indices[i+2]])
				mesh.AppendTriangle(local.MulPoint(a), local.MulPoint(b), local.MulPoint(c), startNormal)
				ea := revolvePoint(points[indices[i]], origin, axis, angle)
				eb := revolvePoint(points[indices[i+1]], origin, axis, angle)
				ec := revolvePoint(points[indices[i+2]], origin, axis, angle)
				mesh.AppendTriangle(local.MulPoint(ec), local.MulPoint(eb), local.MulPoint(ea), endNormal)
			}
		}
	}
	return mesh, nil
}

func closedRing(outer []geomath.Vec2) []geomath.Vec2 {
	if len(outer) == 0 {
		return outer
	}
	return append(append([]geomath.Vec2(nil), outer...), outer[0])
}

// revolvePoint rotates a profile-plane point (XY, Z=0) by angle radians
// around axis through origin using Rodrigues' rotation formula.
func revolvePoint(p geomath.Vec2, origin, axis geomath.Vec3, angle float64) geomath.Vec3 {
	v := to3D(p).Sub(origin)
	k := axis
	cos, sin := math.Cos(angle), math.Sin(angle)
	rotated := v.Scale(cos).Add(k.Cross(v).Scale(sin)).Add(k.Scale(k.Dot(v) * (1 - cos)))
	return rotated.Add(origin)
}

func resolveAxis1(src *rawmodel.Store, id uint32, scale float64) (geomath.Vec3, geomath.Vec3, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCAXIS1PLACEMENT" {
		return geomath.Vec3{}, geomath.Vec3{}, false
	}
	locRef, ok := refAttr(e, idxAxis1Location)
	if !ok {
		return geomath.Vec3{}, geomath.Vec3{}, false
	}
	origin, ok := cartesianPoint3D(src, locRef, scale)
	if !ok {
		return geomath.Vec3{}, geomath.Vec3{}, false
	}
	axis := geomath.Vec3{X: 0, Y: 0, Z: 1}
	if axisRef, ok := refAttr(e, idxAxis1Axis); ok {
		if d, ok := direction3D(src, axisRef); ok {
			axis = d
		}
	}
	return origin, axis, true
}

func cartesianPoint3D(src *rawmodel.Store, id uint32, scale float64) (geomath.Vec3, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCCARTESIANPOINT" {
		return geomath.Vec3{}, false
	}
	coords, ok := listAttr(e, idxCartesianPointCoords)
	if !ok || len(coords) < 2 {
		return geomath.Vec3{}, false
	}
	x, okx := realFromValue(coords[0])
	y, oky := realFromValue(coords[1])
	if !okx || !oky {
		return geomath.Vec3{}, false
	}
	z := 0.0
	if len(coords) >= 3 {
		if zv, ok := realFromValue(coords[2]); ok {
			z = zv
		}
	}
	return geomath.Vec3{X: x * scale, Y: y * scale, Z: z * scale}, true
}
