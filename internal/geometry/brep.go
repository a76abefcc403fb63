package geometry

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxManifoldOuter   = mustIndex("IFCMANIFOLDSOLIDBREP", "Outer")
	idxConnectedFaces  = mustIndex("IFCCONNECTEDFACESET", "CfsFaces")
	idxFaceBounds      = mustIndex("IFCFACE", "Bounds")
	idxFaceBoundBound  = mustIndex("IFCFACEBOUND", "Bound")
	idxFaceBoundOrient = mustIndex("IFCFACEBOUND", "Orientation")
	idxPolyLoopPolygon = mustIndex("IFCPOLYLOOP", "Polygon")
)

// processFacetedBrep tessellates a manifold solid brep (or a bare closed
// shell, which some generators emit directly as a representation item) by
// triangulating each planar face's outer bound with any inner bounds cut
// as holes.
func (p *Processor) processFacetedBrep(e rawmodel.Entity) (Mesh, error) {
	shellRef := e.ExpressID
	if e.TypeName == "IFCFACETEDBREP" {
		ref, ok := refAttr(e, idxManifoldOuter)
		if !ok {
			return Mesh{}, errorf(e.ExpressID, "faceted brep missing Outer")
		}
		shellRef = ref
	}
	shell, ok := p.src.Entity(shellRef)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "brep shell #%d not found", shellRef)
	}
	faceRefs, ok := listAttr(shell, idxConnectedFaces)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "brep shell missing CfsFaces")
	}

	var mesh Mesh
	faceCount, faceFailures := 0, 0
	for _, v := range faceRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		faceCount++
		if err := p.appendFace(&mesh, v.Ref); err != nil {
			faceFailures++
		}
	}
	if faceCount > 0 && faceFailures == faceCount {
		return Mesh{}, errorf(e.ExpressID, "brep has no triangulatable faces")
	}
	return mesh, nil
}

func (p *Processor) appendFace(mesh *Mesh, faceID uint32) error {
	face, ok := p.src.Entity(faceID)
	if !ok || face.TypeName != "IFCFACE" {
		return errorf(faceID, "face not found")
	}
	boundRefs, ok := listAttr(face, idxFaceBounds)
	if !ok || len(boundRefs) == 0 {
		return errorf(faceID, "face missing Bounds")
	}

	explicitOuter := false
	for _, v := range boundRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		if b, ok := p.src.Entity(v.Ref); ok && b.TypeName == "IFCFACEOUTERBOUND" {
			explicitOuter = true
		}
	}

	var outer []geomath.Vec3
	var holes [][]geomath.Vec3
	for i, v := range boundRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		ring, isOuter, err := p.resolveFaceBound(v.Ref, i == 0 && !explicitOuter)
		if err != nil {
			continue
		}
		if isOuter && outer == nil {
			outer = ring
			continue
		}
		holes = append(holes, ring)
	}
	if outer == nil {
		return errorf(faceID, "face resolved no outer bound")
	}

	points, indices, ok := triangulateFace3D(outer, holes)
	if !ok || len(indices) == 0 {
		return errorf(faceID, "face failed to triangulate")
	}
	normal := faceNormalNewell(points)
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.AppendTriangle(points[indices[i]], points[indices[i+1]], points[indices[i+2]], normal)
	}
	return nil
}

// resolveFaceBound reports whether boundID is the face's outer loop: an
// IfcFaceOuterBound is always outer; a plain IfcFaceBound is outer only
// when it is the first bound and no explicit outer bound exists elsewhere.
func (p *Processor) resolveFaceBound(boundID uint32, firstInList bool) ([]geomath.Vec3, bool, error) {
	bound, ok := p.src.Entity(boundID)
	if !ok {
		return nil, false, errorf(boundID, "face bound not found")
	}
	loopRef, ok := refAttr(bound, idxFaceBoundBound)
	if !ok {
		return nil, false, errorf(boundID, "face bound missing Bound")
	}
	ring, err := p.resolvePolyLoop(loopRef)
	if err != nil {
		return nil, false, err
	}
	orientation, hasOrient := boolAttr(bound, idxFaceBoundOrient)
	if !hasOrient || orientation {
		// keep as-authored winding
	} else {
		ring = reverseVec3(ring)
	}
	isOuter := bound.TypeName == "IFCFACEOUTERBOUND" || firstInList
	return ring, isOuter, nil
}

func (p *Processor) resolvePolyLoop(id uint32) ([]geomath.Vec3, error) {
	e, ok := p.src.Entity(id)
	if !ok || e.TypeName != "IFCPOLYLOOP" {
		return nil, errorf(id, "poly loop not found")
	}
	refs, ok := listAttr(e, idxPolyLoopPolygon)
	if !ok || len(refs) < 3 {
		return nil, errorf(id, "poly loop missing Polygon")
	}
	pts := make([]geomath.Vec3, 0, len(refs))
	for _, v := range refs {
		if v.Kind != decode.KindRef {
			continue
		}
		p3, ok := cartesianPoint3D(p.src, v.Ref, p.scale)
		if !ok {
			continue
		}
		pts = append(pts, p3)
	}
	if len(pts) < 3 {
		return nil, errorf(id, "poly loop resolved fewer than 3 points")
	}
	return pts, nil
}

func reverseVec3(v []geomath.Vec3) []geomath.Vec3 {
	out := make([]geomath.Vec3, len(v))
	for i, p := range v {
		out[len(v)-1-i] = p
	}
	return out
}
