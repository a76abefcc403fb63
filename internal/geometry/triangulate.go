package geometry

import "github.com/arx-os/ifclite/internal/geomath"

// Triangulate ear-clips profile (with holes bridged into the outer ring
// first) into a flat list of triangle vertex indices into a single combined
// point list, which is also returned. The outer ring is normalized to
// counter-clockwise and each hole to clockwise before bridging, matching
// the standard hole-bridging convention for ear clipping.
func Triangulate(p Profile) ([]geomath.Vec2, []int, bool) {
	if len(p.Outer) < 3 {
		return nil, nil, false
	}
	points := bridgeHoles(p.Outer, p.Holes)
	indices, ok := earClip(points)
	return points, indices, ok
}

// bridgeHoles merges each hole into the outer ring by connecting it to the
// ring vertex (of the ring built so far) nearest its first point; no
// visibility test is made, so a bridge can cross another hole or the ring.
func bridgeHoles(outer []geomath.Vec2, holes [][]geomath.Vec2) []geomath.Vec2 {
	ring := orient(outer, true)
	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		h := orient(hole, false)
		ring = bridgeOne(ring, h)
	}
	return ring
}

// bridgeOne splices hole into ring at the ring vertex nearest to hole's
// first point, duplicating the bridge vertices so the result stays a
// single simple (self-touching) polygon.
func bridgeOne(ring, hole []geomath.Vec2) []geomath.Vec2 {
	start := hole[0]
	best, bestDist := 0, 0.0
	for i, v := range ring {
		d := v.Sub(start).X*v.Sub(start).X + v.Sub(start).Y*v.Sub(start).Y
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	out := make([]geomath.Vec2, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:best+1]...)
	out = append(out, hole...)
	out = append(out, hole[0])
	out = append(out, ring[best:]...)
	return out
}

func orient(poly []geomath.Vec2, ccw bool) []geomath.Vec2 {
	if geomath.IsCCW(poly) == ccw {
		return append([]geomath.Vec2(nil), poly...)
	}
	out := make([]geomath.Vec2, len(poly))
	for i, v := range poly {
		out[len(poly)-1-i] = v
	}
	return out
}

// earClip triangulates a simple polygon (no self-intersections other than
// the bridge duplicate-vertex seams introduced by bridgeHoles), returning
// triangle indices into points (three per triangle). ok is false for fewer
// than 3 points or when no ear is found while more than 3 vertices remain;
// a 3-vertex input is returned as one triangle with ok true, whatever its
// area.
func earClip(points []geomath.Vec2) ([]int, bool) {
	n := len(points)
	if n < 3 {
		return nil, false
	}
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	var indices []int
	guard := 0
	for len(remaining) > 3 && guard < n*n+16 {
		guard++
		clipped := false
		for i := 0; i < len(remaining); i++ {
			prev := remaining[(i-1+len(remaining))%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]
			if !isConvex(points[prev], points[cur], points[next]) {
				continue
			}
			if anyPointInside(points, remaining, prev, cur, next) {
				continue
			}
			indices = append(indices, prev, cur, next)
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return indices, false
		}
	}
	if len(remaining) == 3 {
		indices = append(indices, remaining[0], remaining[1], remaining[2])
	}
	return indices, true
}

func isConvex(a, b, c geomath.Vec2) bool {
	return geomath.Cross2(a, b, c) > 1e-12
}

func anyPointInside(points []geomath.Vec2, remaining []int, a, b, c int) bool {
	tri := []geomath.Vec2{points[a], points[b], points[c]}
	for _, idx := range remaining {
		if idx == a || idx == b || idx == c {
			continue
		}
		if geomath.PointInPolygon(points[idx], tri) {
			return true
		}
	}
	return false
}
