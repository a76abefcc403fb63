package geomath

import "math"

// Vec2 is a 2D point, used for profile polygons in the swept-solid local
// coordinate system.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Cross2 is the 2D cross product (scalar) of two vectors sharing an apex.
func Cross2(o, a, b Vec2) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// PolygonArea computes a signed polygon area via the shoelace formula,
// adapted from the teacher's calculatePolygonArea.
func PolygonArea(points []Vec2) float64 {
	if len(points) < 3 {
		return 0
	}
	area := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return area / 2.0
}

// PolygonAreaAbs is the unsigned area.
func PolygonAreaAbs(points []Vec2) float64 {
	return math.Abs(PolygonArea(points))
}

// IsCCW reports whether the polygon winds counter-clockwise.
func IsCCW(points []Vec2) bool {
	return PolygonArea(points) > 0
}

// PointInPolygon is a standard ray-casting point-in-polygon test, used by
// ear clipping to reject ears that contain another polygon vertex.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
