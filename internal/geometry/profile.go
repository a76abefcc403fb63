package geometry

import (
	"math"

	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

// Profile is a 2D polygon with optional holes, in the profile definition's
// own local coordinate system (spec §4.8 profile processors).
type Profile struct {
	Outer []geomath.Vec2
	Holes [][]geomath.Vec2
}

// ellipseSegments is the polygon segment count used to approximate a
// circle/ellipse profile and a swept-disk cross-section; the revolution
// processor computes its own step count. Tunable via SetCircleSegments;
// defaults to 32.
var ellipseSegments = 32

// SetCircleSegments overrides the circle/ellipse tessellation resolution
// used by profile, swept-disk, and revolution processing. Values below 3
// are rejected since they cannot form a polygon.
func SetCircleSegments(n int) {
	if n < 3 {
		return
	}
	ellipseSegments = n
}

var (
	idxPositionParam = mustIndex("IFCPARAMETERIZEDPROFILEDEF", "Position")

	idxAxis2Placement2DLocation     = mustIndex("IFCAXIS2PLACEMENT2D", "Location")
	idxAxis2Placement2DRefDirection = mustIndex("IFCAXIS2PLACEMENT2D", "RefDirection")

	idxRectXDim = mustIndex("IFCRECTANGLEPROFILEDEF", "XDim")
	idxRectYDim = mustIndex("IFCRECTANGLEPROFILEDEF", "YDim")

	idxRectHollowWallThickness = mustIndex("IFCRECTANGLEHOLLOWPROFILEDEF", "WallThickness")

	idxCircleRadius = mustIndex("IFCCIRCLEPROFILEDEF", "Radius")

	idxCircleHollowWallThickness = mustIndex("IFCCIRCLEHOLLOWPROFILEDEF", "WallThickness")

	idxEllipseSemiAxis1 = mustIndex("IFCELLIPSEPROFILEDEF", "SemiAxis1")
	idxEllipseSemiAxis2 = mustIndex("IFCELLIPSEPROFILEDEF", "SemiAxis2")

	idxIOverallWidth    = mustIndex("IFCISHAPEPROFILEDEF", "OverallWidth")
	idxIOverallDepth    = mustIndex("IFCISHAPEPROFILEDEF", "OverallDepth")
	idxIWebThickness    = mustIndex("IFCISHAPEPROFILEDEF", "WebThickness")
	idxIFlangeThickness = mustIndex("IFCISHAPEPROFILEDEF", "FlangeThickness")

	idxLDepth     = mustIndex("IFCLSHAPEPROFILEDEF", "Depth")
	idxLWidth     = mustIndex("IFCLSHAPEPROFILEDEF", "Width")
	idxLThickness = mustIndex("IFCLSHAPEPROFILEDEF", "Thickness")

	idxTDepth           = mustIndex("IFCTSHAPEPROFILEDEF", "Depth")
	idxTFlangeWidth     = mustIndex("IFCTSHAPEPROFILEDEF", "FlangeWidth")
	idxTWebThickness    = mustIndex("IFCTSHAPEPROFILEDEF", "WebThickness")
	idxTFlangeThickness = mustIndex("IFCTSHAPEPROFILEDEF", "FlangeThickness")

	idxUDepth           = mustIndex("IFCUSHAPEPROFILEDEF", "Depth")
	idxUFlangeWidth     = mustIndex("IFCUSHAPEPROFILEDEF", "FlangeWidth")
	idxUWebThickness    = mustIndex("IFCUSHAPEPROFILEDEF", "WebThickness")
	idxUFlangeThickness = mustIndex("IFCUSHAPEPROFILEDEF", "FlangeThickness")

	idxZDepth           = mustIndex("IFCZSHAPEPROFILEDEF", "Depth")
	idxZFlangeWidth     = mustIndex("IFCZSHAPEPROFILEDEF", "FlangeWidth")
	idxZWebThickness    = mustIndex("IFCZSHAPEPROFILEDEF", "WebThickness")
	idxZFlangeThickness = mustIndex("IFCZSHAPEPROFILEDEF", "FlangeThickness")

	idxCDepth         = mustIndex("IFCCSHAPEPROFILEDEF", "Depth")
	idxCWidth         = mustIndex("IFCCSHAPEPROFILEDEF", "Width")
	idxCWallThickness = mustIndex("IFCCSHAPEPROFILEDEF", "WallThickness")
	idxCGirth         = mustIndex("IFCCSHAPEPROFILEDEF", "Girth")

	idxTrapBottomXDim = mustIndex("IFCTRAPEZIUMPROFILEDEF", "BottomXDim")
	idxTrapTopXDim    = mustIndex("IFCTRAPEZIUMPROFILEDEF", "TopXDim")
	idxTrapYDim       = mustIndex("IFCTRAPEZIUMPROFILEDEF", "YDim")
	idxTrapTopXOffset = mustIndex("IFCTRAPEZIUMPROFILEDEF", "TopXOffset")

	idxArbOuterCurve  = mustIndex("IFCARBITRARYCLOSEDPROFILEDEF", "OuterCurve")
	idxArbInnerCurves = mustIndex("IFCARBITRARYPROFILEDEFWITHVOIDS", "InnerCurves")

	idxDerivedParent = mustIndex("IFCDERIVEDPROFILEDEF", "ParentProfile")
	idxDerivedOp     = mustIndex("IFCDERIVEDPROFILEDEF", "Operator")

	idxCompositeProfiles = mustIndex("IFCCOMPOSITEPROFILEDEF", "Profiles")
)

// ResolveProfile dispatches on a profile def's concrete type and returns
// its local-space polygon (plus holes, for the hollow/with-voids variants).
func ResolveProfile(src *rawmodel.Store, table *intern.Table, id uint32) (Profile, error) {
	e, ok := src.Entity(id)
	if !ok {
		return Profile{}, apperrors.UnresolvedReff(int64(id), "profile #%d not found", id)
	}
	var p Profile
	var err error
	switch e.TypeName {
	case "IFCRECTANGLEPROFILEDEF", "IFCRECTANGLEHOLLOWPROFILEDEF":
		p, err = resolveRectangleProfile(e)
	case "IFCCIRCLEPROFILEDEF", "IFCCIRCLEHOLLOWPROFILEDEF":
		p, err = resolveCircleProfile(e)
	case "IFCELLIPSEPROFILEDEF":
		p, err = resolveEllipseProfile(e)
	case "IFCISHAPEPROFILEDEF":
		p, err = resolveIShapeProfile(e)
	case "IFCLSHAPEPROFILEDEF":
		p, err = resolveLShapeProfile(e)
	case "IFCTSHAPEPROFILEDEF":
		p, err = resolveTShapeProfile(e)
	case "IFCUSHAPEPROFILEDEF":
		p, err = resolveUShapeProfile(e)
	case "IFCZSHAPEPROFILEDEF":
		p, err = resolveZShapeProfile(e)
	case "IFCCSHAPEPROFILEDEF":
		p, err = resolveCShapeProfile(e)
	case "IFCTRAPEZIUMPROFILEDEF":
		p, err = resolveTrapeziumProfile(e)
	case "IFCARBITRARYCLOSEDPROFILEDEF", "IFCARBITRARYPROFILEDEFWITHVOIDS":
		return resolveArbitraryProfile(src, table, e)
	case "IFCDERIVEDPROFILEDEF":
		return resolveDerivedProfile(src, table, e)
	case "IFCCOMPOSITEPROFILEDEF":
		return resolveCompositeProfile(src, table, e)
	default:
		return Profile{}, apperrors.GeometryItemf(int64(id), "unsupported profile type %s", e.TypeName)
	}
	if err != nil {
		return p, err
	}
	if posRef, ok := refAttr(e, idxPositionParam); ok {
		if xform, ok := resolveAxis2Placement2D(src, posRef); ok {
			p.Outer = applyTransform2D(xform, p.Outer)
			p.Holes = applyHoles2D(xform, p.Holes)
		}
	}
	return p, nil
}

// resolveAxis2Placement2D reads an IfcAxis2Placement2D directly (Location
// + optional RefDirection, no scale) rather than through the placement
// package's Resolver, since a profile definition's own Position sits in
// the swept solid's un-unit-scaled local coordinates — the uniform scale
// is applied once, later, over the whole resolved profile.
func resolveAxis2Placement2D(src *rawmodel.Store, id uint32) (transform2D, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCAXIS2PLACEMENT2D" {
		return transform2D{}, false
	}
	locRef, ok := refAttr(e, idxAxis2Placement2DLocation)
	if !ok {
		return transform2D{}, false
	}
	origin, ok := cartesianPoint2D(src, locRef)
	if !ok {
		return transform2D{}, false
	}
	t := transform2D{origin: origin, xAxis: geomath.Vec2{X: 1, Y: 0}, scale: 1}
	if dirRef, ok := refAttr(e, idxAxis2Placement2DRefDirection); ok {
		if dir, ok := direction2D(src, dirRef); ok {
			t.xAxis = dir
		}
	}
	return t, true
}

func resolveRectangleProfile(e rawmodel.Entity) (Profile, error) {
	xdim, ok1 := realAttr(e, idxRectXDim)
	ydim, ok2 := realAttr(e, idxRectYDim)
	if !ok1 || !ok2 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "rectangle profile missing XDim/YDim")
	}
	hx, hy := xdim/2, ydim/2
	outer := rectPolygon(hx, hy)
	p := Profile{Outer: outer}
	if e.TypeName == "IFCRECTANGLEHOLLOWPROFILEDEF" {
		t, ok := realAttr(e, idxRectHollowWallThickness)
		if !ok || t <= 0 || t >= hx || t >= hy {
			return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "rectangle hollow profile has invalid WallThickness")
		}
		p.Holes = [][]geomath.Vec2{rectPolygon(hx-t, hy-t)}
	}
	return p, nil
}

func rectPolygon(hx, hy float64) []geomath.Vec2 {
	return []geomath.Vec2{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}}
}

func resolveCircleProfile(e rawmodel.Entity) (Profile, error) {
	r, ok := realAttr(e, idxCircleRadius)
	if !ok || r <= 0 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "circle profile missing Radius")
	}
	p := Profile{Outer: circlePolygon(r, ellipseSegments)}
	if e.TypeName == "IFCCIRCLEHOLLOWPROFILEDEF" {
		t, ok := realAttr(e, idxCircleHollowWallThickness)
		if !ok || t <= 0 || t >= r {
			return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "circle hollow profile has invalid WallThickness")
		}
		p.Holes = [][]geomath.Vec2{circlePolygon(r-t, ellipseSegments)}
	}
	return p, nil
}

func circlePolygon(r float64, segments int) []geomath.Vec2 {
	pts := make([]geomath.Vec2, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = geomath.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return pts
}

func resolveEllipseProfile(e rawmodel.Entity) (Profile, error) {
	a, ok1 := realAttr(e, idxEllipseSemiAxis1)
	b, ok2 := realAttr(e, idxEllipseSemiAxis2)
	if !ok1 || !ok2 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "ellipse profile missing SemiAxis1/SemiAxis2")
	}
	pts := make([]geomath.Vec2, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(ellipseSegments)
		pts[i] = geomath.Vec2{X: a * math.Cos(theta), Y: b * math.Sin(theta)}
	}
	return Profile{Outer: pts}, nil
}

// resolveIShapeProfile builds a symmetric I/wide-flange polygon, ignoring
// FilletRadius (rendered as a sharp corner — a documented approximation).
func resolveIShapeProfile(e rawmodel.Entity) (Profile, error) {
	width, ok1 := realAttr(e, idxIOverallWidth)
	depth, ok2 := realAttr(e, idxIOverallDepth)
	web, ok3 := realAttr(e, idxIWebThickness)
	flange, ok4 := realAttr(e, idxIFlangeThickness)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "I-shape profile missing a required dimension")
	}
	hw, hd, hweb := width/2, depth/2, web/2
	outer := []geomath.Vec2{
		{X: -hw, Y: -hd}, {X: hw, Y: -hd}, {X: hw, Y: -hd + flange},
		{X: hweb, Y: -hd + flange}, {X: hweb, Y: hd - flange}, {X: hw, Y: hd - flange},
		{X: hw, Y: hd}, {X: -hw, Y: hd}, {X: -hw, Y: hd - flange},
		{X: -hweb, Y: hd - flange}, {X: -hweb, Y: -hd + flange}, {X: -hw, Y: -hd + flange},
	}
	return Profile{Outer: outer}, nil
}

func resolveLShapeProfile(e rawmodel.Entity) (Profile, error) {
	depth, ok1 := realAttr(e, idxLDepth)
	thickness, ok3 := realAttr(e, idxLThickness)
	if !ok1 || !ok3 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "L-shape profile missing Depth/Thickness")
	}
	width, ok2 := realAttr(e, idxLWidth)
	if !ok2 {
		width = depth // spec: Width defaults to Depth for equal-leg angles
	}
	outer := []geomath.Vec2{
		{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: thickness},
		{X: thickness, Y: thickness}, {X: thickness, Y: depth}, {X: 0, Y: depth},
	}
	return Profile{Outer: outer}, nil
}

func resolveTShapeProfile(e rawmodel.Entity) (Profile, error) {
	depth, ok1 := realAttr(e, idxTDepth)
	flangeWidth, ok2 := realAttr(e, idxTFlangeWidth)
	web, ok3 := realAttr(e, idxTWebThickness)
	flange, ok4 := realAttr(e, idxTFlangeThickness)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "T-shape profile missing a required dimension")
	}
	hw, hweb := flangeWidth/2, web/2
	// Flange at top, stem hanging down to Y=0.
	outer := []geomath.Vec2{
		{X: -hw, Y: depth}, {X: hw, Y: depth}, {X: hw, Y: depth - flange},
		{X: hweb, Y: depth - flange}, {X: hweb, Y: 0}, {X: -hweb, Y: 0},
		{X: -hweb, Y: depth - flange}, {X: -hw, Y: depth - flange},
	}
	return Profile{Outer: outer}, nil
}

func resolveUShapeProfile(e rawmodel.Entity) (Profile, error) {
	depth, ok1 := realAttr(e, idxUDepth)
	flangeWidth, ok2 := realAttr(e, idxUFlangeWidth)
	web, ok3 := realAttr(e, idxUWebThickness)
	flange, ok4 := realAttr(e, idxUFlangeThickness)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "U-shape profile missing a required dimension")
	}
	hw := flangeWidth / 2
	outer := []geomath.Vec2{
		{X: -hw, Y: 0}, {X: hw, Y: 0}, {X: hw, Y: depth},
		{X: hw - flange, Y: depth}, {X: hw - flange, Y: web}, {X: -hw + flange, Y: web},
		{X: -hw + flange, Y: depth}, {X: -hw, Y: depth},
	}
	return Profile{Outer: outer}, nil
}

func resolveZShapeProfile(e rawmodel.Entity) (Profile, error) {
	depth, ok1 := realAttr(e, idxZDepth)
	flangeWidth, ok2 := realAttr(e, idxZFlangeWidth)
	web, ok3 := realAttr(e, idxZWebThickness)
	flange, ok4 := realAttr(e, idxZFlangeThickness)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "Z-shape profile missing a required dimension")
	}
	hweb := web / 2
	hd := depth / 2
	outer := []geomath.Vec2{
		{X: -hweb, Y: -hd}, {X: flangeWidth - hweb, Y: -hd}, {X: flangeWidth - hweb, Y: -hd + flange},
		{X: hweb, Y: -hd + flange}, {X: hweb, Y: hd}, {X: -flangeWidth + hweb, Y: hd},
		{X: -flangeWidth + hweb, Y: hd - flange}, {X: -hweb, Y: hd - flange},
	}
	return Profile{Outer: outer}, nil
}

func resolveCShapeProfile(e rawmodel.Entity) (Profile, error) {
	depth, ok1 := realAttr(e, idxCDepth)
	width, ok2 := realAttr(e, idxCWidth)
	wall, ok3 := realAttr(e, idxCWallThickness)
	girth, ok4 := realAttr(e, idxCGirth)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "C-shape profile missing a required dimension")
	}
	hd, hw := depth/2, width/2
	outer := []geomath.Vec2{
		{X: -hw, Y: -hd}, {X: hw, Y: -hd}, {X: hw, Y: -hd + girth},
		{X: hw - wall, Y: -hd + girth}, {X: hw - wall, Y: -hd + wall}, {X: -hw + wall, Y: -hd + wall},
		{X: -hw + wall, Y: hd - wall}, {X: hw - wall, Y: hd - wall}, {X: hw - wall, Y: hd - girth},
		{X: hw, Y: hd - girth}, {X: hw, Y: hd}, {X: -hw, Y: hd},
	}
	return Profile{Outer: outer}, nil
}

func resolveTrapeziumProfile(e rawmodel.Entity) (Profile, error) {
	bottom, ok1 := realAttr(e, idxTrapBottomXDim)
	top, ok2 := realAttr(e, idxTrapTopXDim)
	ydim, ok3 := realAttr(e, idxTrapYDim)
	offset, ok4 := realAttr(e, idxTrapTopXOffset)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "trapezium profile missing a required dimension")
	}
	outer := []geomath.Vec2{
		{X: 0, Y: 0}, {X: bottom, Y: 0}, {X: offset + top, Y: ydim}, {X: offset, Y: ydim},
	}
	return Profile{Outer: outer}, nil
}
