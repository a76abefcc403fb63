package geometry

import "github.com/arx-os/ifclite/internal/geomath"

// triangulateFace3D triangulates a planar 3D polygon (outer ring plus
// holes) by projecting into the face's own 2D plane, ear-clipping there,
// and mapping the resulting indices back onto the bridged 3D ring it
// built alongside the projection. Mirrors Triangulate's 2D hole-bridging
// approach one dimension up.
func triangulateFace3D(outer []geomath.Vec3, holes [][]geomath.Vec3) ([]geomath.Vec3, []int, bool) {
	if len(outer) < 3 {
		return nil, nil, false
	}
	normal := faceNormalNewell(outer)
	if normal.Length() == 0 {
		return nil, nil, false
	}
	xAxis, yAxis := planeBasis(normal)
	origin := outer[0]
	project := func(pts []geomath.Vec3) []geomath.Vec2 {
		out := make([]geomath.Vec2, len(pts))
		for i, p := range pts {
			d := p.Sub(origin)
			out[i] = geomath.Vec2{X: d.Dot(xAxis), Y: d.Dot(yAxis)}
		}
		return out
	}

	ring := orient3D(outer, project, true)
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		ring = bridgeOne3D(ring, orient3D(h, project, false), project)
	}
	indices, ok := earClip(project(ring))
	return ring, indices, ok
}

// faceNormalNewell computes a polygon's normal via Newell's method, which
// tolerates mild non-planarity and works for both convex and concave
// rings without needing three non-collinear points up front.
func faceNormalNewell(ring []geomath.Vec3) geomath.Vec3 {
	var n geomath.Vec3
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n.Normalize()
}

func planeBasis(normal geomath.Vec3) (geomath.Vec3, geomath.Vec3) {
	ref := geomath.Vec3{X: 0, Y: 0, Z: 1}
	if normal.Cross(ref).Length() < 1e-6 {
		ref = geomath.Vec3{X: 1, Y: 0, Z: 0}
	}
	x := normal.Cross(ref).Normalize()
	y := normal.Cross(x).Normalize()
	return x, y
}

func orient3D(ring []geomath.Vec3, project func([]geomath.Vec3) []geomath.Vec2, ccw bool) []geomath.Vec3 {
	p2 := project(ring)
	if geomath.IsCCW(p2) == ccw {
		return append([]geomath.Vec3(nil), ring...)
	}
	out := make([]geomath.Vec3, len(ring))
	for i, v := range ring {
		out[len(ring)-1-i] = v
	}
	return out
}

// bridgeOne3D splices hole into ring at ring's nearest (in-plane) vertex
// to hole's first point, the 3D analogue of bridgeOne.
func bridgeOne3D(ring, hole []geomath.Vec3, project func([]geomath.Vec3) []geomath.Vec2) []geomath.Vec3 {
	start := hole[0]
	best, bestDist := 0, 0.0
	for i, v := range ring {
		d := v.Sub(start).Length()
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	out := make([]geomath.Vec3, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:best+1]...)
	out = append(out, hole...)
	out = append(out, hole[0])
	out = append(out, ring[best:]...)
	return out
}
