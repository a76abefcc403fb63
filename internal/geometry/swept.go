package geometry

import (
	"math"

	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxSweptDiskDirectrix   = mustIndex("IFCSWEPTDISKSOLID", "Directrix")
	idxSweptDiskRadius      = mustIndex("IFCSWEPTDISKSOLID", "Radius")
	idxSweptDiskInnerRadius = mustIndex("IFCSWEPTDISKSOLID", "InnerRadius")
)

// diskSegments is the cross-section tessellation for swept-disk solids
// (pipes, cables, rebar), matching the circle profile's segment count.
func diskSegments() int { return ellipseSegments }

// processSweptDiskSolid sweeps a circular (optionally annular) disk along
// Directrix, a 3D polyline, building a ruled tube surface plus flat end
// caps. Only IfcPolyline directrices are supported; other bounded curves
// fail the item without failing the element.
func (p *Processor) processSweptDiskSolid(e rawmodel.Entity) (Mesh, error) {
	directrixRef, ok := refAttr(e, idxSweptDiskDirectrix)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "swept disk solid missing Directrix")
	}
	path, err := polyline3D(p.src, directrixRef, p.scale)
	if err != nil {
		return Mesh{}, err
	}
	radius, ok := realAttr(e, idxSweptDiskRadius)
	if !ok || radius <= 0 {
		return Mesh{}, errorf(e.ExpressID, "swept disk solid missing positive Radius")
	}
	radius *= p.scale
	innerRadius := 0.0
	if r, ok := realAttr(e, idxSweptDiskInnerRadius); ok && r > 0 && r*p.scale < radius {
		innerRadius = r * p.scale
	}

	var mesh Mesh
	rings := make([][]geomath.Vec3, len(path))
	innerRings := make([][]geomath.Vec3, len(path))
	for i, center := range path {
		tangent := pathTangent(path, i)
		rings[i] = diskRing(center, tangent, radius)
		if innerRadius > 0 {
			innerRings[i] = diskRing(center, tangent, innerRadius)
		}
	}
	for i := 0; i+1 < len(rings); i++ {
		appendTube(&mesh, rings[i], rings[i+1], false)
		if innerRadius > 0 {
			appendTube(&mesh, innerRings[i], innerRings[i+1], true)
		}
	}
	appendDiskCap(&mesh, rings[0], innerRings[0], pathTangent(path, 0).Scale(-1), true)
	last := len(rings) - 1
	appendDiskCap(&mesh, rings[last], innerRings[last], pathTangent(path, last), false)
	return mesh, nil
}

func diskRing(center, tangent geomath.Vec3, radius float64) []geomath.Vec3 {
	x, y := planeBasis(tangent)
	n := diskSegments()
	ring := make([]geomath.Vec3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		offset := x.Scale(radius * math.Cos(theta)).Add(y.Scale(radius * math.Sin(theta)))
		ring[i] = center.Add(offset)
	}
	return ring
}

func pathTangent(path []geomath.Vec3, i int) geomath.Vec3 {
	switch {
	case len(path) < 2:
		return geomath.Vec3{X: 0, Y: 0, Z: 1}
	case i == 0:
		return path[1].Sub(path[0]).Normalize()
	case i == len(path)-1:
		return path[i].Sub(path[i-1]).Normalize()
	default:
		return path[i+1].Sub(path[i-1]).Normalize()
	}
}

func appendTube(mesh *Mesh, a, b []geomath.Vec3, inner bool) {
	n := len(a)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		normal := a[i].Sub(b[j]).Cross(a[j].Sub(b[j])).Normalize()
		if inner {
			normal = normal.Scale(-1)
			mesh.AppendTriangle(a[j], a[i], b[i], normal)
			mesh.AppendTriangle(a[j], b[i], b[j], normal)
			continue
		}
		mesh.AppendTriangle(a[i], a[j], b[j], normal)
		mesh.AppendTriangle(a[i], b[j], b[i], normal)
	}
}

// appendDiskCap fans a (possibly annular) end cap; annular caps use the
// ring-to-ring tube builder instead of a fan since they have a hole.
func appendDiskCap(mesh *Mesh, outer, inner []geomath.Vec3, normal geomath.Vec3, flip bool) {
	if len(inner) > 0 {
		if flip {
			appendTube(mesh, inner, outer, false)
		} else {
			appendTube(mesh, outer, inner, false)
		}
		return
	}
	if len(outer) < 3 {
		return
	}
	center := centroid(outer)
	for i := 0; i < len(outer); i++ {
		j := (i + 1) % len(outer)
		if flip {
			mesh.AppendTriangle(center, outer[j], outer[i], normal)
		} else {
			mesh.AppendTriangle(center, outer[i], outer[j], normal)
		}
	}
}

func centroid(pts []geomath.Vec3) geomath.Vec3 {
	var sum geomath.Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// polyline3D resolves an IfcPolyline's Points into 3D coordinates; other
// curve types aren't supported as swept-disk directrices.
func polyline3D(src *rawmodel.Store, id uint32, scale float64) ([]geomath.Vec3, error) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCPOLYLINE" {
		return nil, errorf(id, "swept disk directrix must be an IfcPolyline")
	}
	refs, ok := listAttr(e, idxPolylinePoints)
	if !ok {
		return nil, errorf(id, "directrix polyline missing Points")
	}
	pts := make([]geomath.Vec3, 0, len(refs))
	for _, v := range refs {
		if v.Kind != decode.KindRef {
			continue
		}
		p3, ok := cartesianPoint3D(src, v.Ref, scale)
		if !ok {
			continue
		}
		pts = append(pts, p3)
	}
	if len(pts) < 2 {
		return nil, errorf(id, "directrix polyline resolved fewer than 2 points")
	}
	return pts, nil
}
