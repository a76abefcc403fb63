package geometry

import (
	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxPolylinePoints             = mustIndex("IFCPOLYLINE", "Points")
	idxCompositeCurveSegments     = mustIndex("IFCCOMPOSITECURVE", "Segments")
	idxCompositeCurveSegmentCurve = mustIndex("IFCCOMPOSITECURVESEGMENT", "ParentCurve")
	idxCartesianPointCoords       = mustIndex("IFCCARTESIANPOINT", "Coordinates")
)

// curvePolygon resolves a bounded 2D curve (IfcPolyline or IfcCompositeCurve
// of polyline segments) to its vertex list, used by the profile-by-curve
// processors. Only the first two coordinate components of each
// point are used — profile curves live in a 2D plane.
func curvePolygon(src *rawmodel.Store, id uint32) ([]geomath.Vec2, error) {
	e, ok := src.Entity(id)
	if !ok {
		return nil, apperrors.UnresolvedReff(int64(id), "curve #%d not found", id)
	}
	switch e.TypeName {
	case "IFCPOLYLINE":
		return polylinePoints(src, e)
	case "IFCCOMPOSITECURVE":
		return compositeCurvePoints(src, e)
	default:
		return nil, apperrors.GeometryItemf(int64(id), "unsupported profile curve type %s", e.TypeName)
	}
}

func polylinePoints(src *rawmodel.Store, e rawmodel.Entity) ([]geomath.Vec2, error) {
	refs, ok := listAttr(e, idxPolylinePoints)
	if !ok {
		return nil, apperrors.GeometryItemf(int64(e.ExpressID), "polyline missing Points")
	}
	pts := make([]geomath.Vec2, 0, len(refs))
	for _, v := range refs {
		if v.Kind != decode.KindRef {
			continue
		}
		p, ok := cartesianPoint2D(src, v.Ref)
		if !ok {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return nil, apperrors.GeometryItemf(int64(e.ExpressID), "polyline has fewer than 3 resolvable points")
	}
	return pts, nil
}

func compositeCurvePoints(src *rawmodel.Store, e rawmodel.Entity) ([]geomath.Vec2, error) {
	refs, ok := listAttr(e, idxCompositeCurveSegments)
	if !ok {
		return nil, apperrors.GeometryItemf(int64(e.ExpressID), "composite curve missing Segments")
	}
	var pts []geomath.Vec2
	for _, v := range refs {
		if v.Kind != decode.KindRef {
			continue
		}
		seg, ok := src.Entity(v.Ref)
		if !ok {
			continue
		}
		parentRef, ok := refAttr(seg, idxCompositeCurveSegmentCurve)
		if !ok {
			continue
		}
		segPts, err := curvePolygon(src, parentRef)
		if err != nil {
			continue
		}
		pts = append(pts, segPts...)
	}
	if len(pts) < 3 {
		return nil, apperrors.GeometryItemf(int64(e.ExpressID), "composite curve resolved to fewer than 3 points")
	}
	return pts, nil
}

func cartesianPoint2D(src *rawmodel.Store, id uint32) (geomath.Vec2, bool) {
	e, ok := src.Entity(id)
	if !ok || e.TypeName != "IFCCARTESIANPOINT" {
		return geomath.Vec2{}, false
	}
	coords, ok := listAttr(e, idxCartesianPointCoords)
	if !ok || len(coords) < 2 {
		return geomath.Vec2{}, false
	}
	x, okx := realFromValue(coords[0])
	y, oky := realFromValue(coords[1])
	if !okx || !oky {
		return geomath.Vec2{}, false
	}
	return geomath.Vec2{X: x, Y: y}, true
}

func realFromValue(v decode.Value) (float64, bool) {
	switch v.Kind {
	case decode.KindReal:
		return v.Real, true
	case decode.KindInteger:
		return float64(v.Int), true
	default:
		return 0, false
	}
}
