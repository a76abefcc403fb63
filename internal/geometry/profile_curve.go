package geometry

import (
	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxXformAxis1          = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR2D", "Axis1")
	idxXformLocalOrigin    = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR2D", "LocalOrigin")
	idxXformScale          = mustIndex("IFCCARTESIANTRANSFORMATIONOPERATOR2D", "Scale")
	idxDirectionRatios     = mustIndex("IFCDIRECTION", "DirectionRatios")
)

func resolveArbitraryProfile(src *rawmodel.Store, table *intern.Table, e rawmodel.Entity) (Profile, error) {
	outerRef, ok := refAttr(e, idxArbOuterCurve)
	if !ok {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "arbitrary profile missing OuterCurve")
	}
	outer, err := curvePolygon(src, outerRef)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Outer: outer}
	if e.TypeName != "IFCARBITRARYPROFILEDEFWITHVOIDS" {
		return p, nil
	}
	innerRefs, ok := listAttr(e, idxArbInnerCurves)
	if !ok {
		return p, nil
	}
	for _, v := range innerRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		hole, err := curvePolygon(src, v.Ref)
		if err != nil {
			continue
		}
		p.Holes = append(p.Holes, hole)
	}
	return p, nil
}

// resolveDerivedProfile applies a 2D cartesian transformation operator
// (translate + rotate + uniform scale) to the parent profile's polygon.
func resolveDerivedProfile(src *rawmodel.Store, table *intern.Table, e rawmodel.Entity) (Profile, error) {
	parentRef, ok := refAttr(e, idxDerivedParent)
	if !ok {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "derived profile missing ParentProfile")
	}
	parent, err := ResolveProfile(src, table, parentRef)
	if err != nil {
		return Profile{}, err
	}
	opRef, ok := refAttr(e, idxDerivedOp)
	if !ok {
		return parent, nil
	}
	xform, ok := resolve2DTransform(src, opRef)
	if !ok {
		return parent, nil
	}
	return Profile{Outer: applyTransform2D(xform, parent.Outer), Holes: applyHoles2D(xform, parent.Holes)}, nil
}

func resolveCompositeProfile(src *rawmodel.Store, table *intern.Table, e rawmodel.Entity) (Profile, error) {
	refs, ok := listAttr(e, idxCompositeProfiles)
	if !ok {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "composite profile missing Profiles")
	}
	var combined Profile
	for _, v := range refs {
		if v.Kind != decode.KindRef {
			continue
		}
		sub, err := ResolveProfile(src, table, v.Ref)
		if err != nil {
			continue
		}
		if combined.Outer == nil {
			combined = sub
			continue
		}
		// Subsequent profiles in the composite contribute their outer
		// boundary as additional holes/voids in the combined triangulation
		// pass rather than a true boolean union.
		combined.Holes = append(combined.Holes, sub.Outer)
		combined.Holes = append(combined.Holes, sub.Holes...)
	}
	if combined.Outer == nil {
		return Profile{}, apperrors.GeometryItemf(int64(e.ExpressID), "composite profile resolved no member profiles")
	}
	return combined, nil
}

type transform2D struct {
	origin geomath.Vec2
	xAxis  geomath.Vec2
	scale  float64
}

func resolve2DTransform(src *rawmodel.Store, id uint32) (transform2D, bool) {
	e, ok := src.Entity(id)
	if !ok {
		return transform2D{}, false
	}
	origin, ok := cartesianPoint2D(src, firstRef(e, idxXformLocalOrigin))
	if !ok {
		return transform2D{}, false
	}
	t := transform2D{origin: origin, xAxis: geomath.Vec2{X: 1, Y: 0}, scale: 1}
	if s, ok := realAttr(e, idxXformScale); ok && s != 0 {
		t.scale = s
	}
	if axisRef, ok := refAttr(e, idxXformAxis1); ok {
		if dir, ok := direction2D(src, axisRef); ok {
			t.xAxis = dir
		}
	}
	return t, true
}

func firstRef(e rawmodel.Entity, idx int) uint32 {
	r, _ := refAttr(e, idx)
	return r
}

func direction2D(src *rawmodel.Store, id uint32) (geomath.Vec2, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCDIRECTION" {
		return geomath.Vec2{}, false
	}
	coords, ok := listAttr(e, idxDirectionRatios)
	if !ok || len(coords) < 2 {
		return geomath.Vec2{}, false
	}
	x, okx := realFromValue(coords[0])
	y, oky := realFromValue(coords[1])
	if !okx || !oky {
		return geomath.Vec2{}, false
	}
	v := geomath.Vec2{X: x, Y: y}
	l := vec2Length(v)
	if l == 0 {
		return geomath.Vec2{}, false
	}
	return geomath.Vec2{X: v.X / l, Y: v.Y / l}, true
}

func vec2Length(v geomath.Vec2) float64 {
	return geomath.Vec3{X: v.X, Y: v.Y, Z: 0}.Length()
}

func applyTransform2D(t transform2D, pts []geomath.Vec2) []geomath.Vec2 {
	out := make([]geomath.Vec2, len(pts))
	yAxis := geomath.Vec2{X: -t.xAxis.Y, Y: t.xAxis.X}
	for i, p := range pts {
		sx, sy := p.X*t.scale, p.Y*t.scale
		out[i] = geomath.Vec2{
			X: t.origin.X + sx*t.xAxis.X + sy*yAxis.X,
			Y: t.origin.Y + sx*t.xAxis.Y + sy*yAxis.Y,
		}
	}
	return out
}

func applyHoles2D(t transform2D, holes [][]geomath.Vec2) [][]geomath.Vec2 {
	out := make([][]geomath.Vec2, len(holes))
	for i, h := range holes {
		out[i] = applyTransform2D(t, h)
	}
	return out
}
