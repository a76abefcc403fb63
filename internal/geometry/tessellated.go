package geometry

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxTessellatedCoordinates = mustIndex("IFCTESSELLATEDFACESET", "Coordinates")
	idxCoordList              = mustIndex("IFCCARTESIANPOINTLIST3D", "CoordList")

	idxTriangulatedCoordIndex = mustIndex("IFCTRIANGULATEDFACESET", "CoordIndex")
	idxPolygonalFaces         = mustIndex("IFCPOLYGONALFACESET", "Faces")
	idxIndexedPolygonalFace   = mustIndex("IFCINDEXEDPOLYGONALFACE", "CoordIndex")
)

// resolveCoordList reads an IfcCartesianPointList3D into a flat, unit-scaled
// position slice shared by both tessellated face set processors.
func (p *Processor) resolveCoordList(e rawmodel.Entity) ([]geomath.Vec3, error) {
	coordsRef, ok := refAttr(e, idxTessellatedCoordinates)
	if !ok {
		return nil, errorf(e.ExpressID, "tessellated face set missing Coordinates")
	}
	coordsEntity, ok := p.src.Entity(coordsRef)
	if !ok || coordsEntity.TypeName != "IFCCARTESIANPOINTLIST3D" {
		return nil, errorf(e.ExpressID, "tessellated face set Coordinates not a point list")
	}
	rows, ok := listAttr(coordsEntity, idxCoordList)
	if !ok {
		return nil, errorf(e.ExpressID, "point list missing CoordList")
	}
	positions := make([]geomath.Vec3, 0, len(rows))
	for _, row := range rows {
		if row.Kind != decode.KindList || len(row.List) < 3 {
			continue
		}
		x, okx := realFromValue(row.List[0])
		y, oky := realFromValue(row.List[1])
		z, okz := realFromValue(row.List[2])
		if !okx || !oky || !okz {
			continue
		}
		positions = append(positions, geomath.Vec3{X: x * p.scale, Y: y * p.scale, Z: z * p.scale})
	}
	return positions, nil
}

// processTriangulatedFaceSet reads CoordIndex as a list of 1-based triangle
// index triples and emits one flat-shaded triangle per entry. Per-vertex
// Normals/PnIndex are not carried — flat face normals are recomputed from
// the resolved positions, matching the brep/tessellation processors'
// shared shading convention.
func (p *Processor) processTriangulatedFaceSet(e rawmodel.Entity) (Mesh, error) {
	positions, err := p.resolveCoordList(e)
	if err != nil {
		return Mesh{}, err
	}
	triangles, ok := listAttr(e, idxTriangulatedCoordIndex)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "triangulated face set missing CoordIndex")
	}
	var mesh Mesh
	for _, tri := range triangles {
		if tri.Kind != decode.KindList || len(tri.List) != 3 {
			continue
		}
		a, oka := indexValue(tri.List[0])
		b, okb := indexValue(tri.List[1])
		c, okc := indexValue(tri.List[2])
		if !oka || !okb || !okc || !inBounds(positions, a, b, c) {
			continue
		}
		pa, pb, pc := positions[a], positions[b], positions[c]
		normal := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
		mesh.AppendTriangle(pa, pb, pc, normal)
	}
	if mesh.IsEmpty() {
		return Mesh{}, errorf(e.ExpressID, "triangulated face set produced no triangles")
	}
	return mesh, nil
}

// processPolygonalFaceSet fan/ear-clip triangulates each IfcIndexedPolygonalFace
// (an N-gon, 1-based CoordIndex into the shared point list) via triangulateFace3D.
func (p *Processor) processPolygonalFaceSet(e rawmodel.Entity) (Mesh, error) {
	positions, err := p.resolveCoordList(e)
	if err != nil {
		return Mesh{}, err
	}
	faceRefs, ok := listAttr(e, idxPolygonalFaces)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "polygonal face set missing Faces")
	}
	var mesh Mesh
	faceCount, faceFailures := 0, 0
	for _, v := range faceRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		faceCount++
		face, ok := p.src.Entity(v.Ref)
		if !ok {
			faceFailures++
			continue
		}
		idxList, ok := listAttr(face, idxIndexedPolygonalFace)
		if !ok || len(idxList) < 3 {
			faceFailures++
			continue
		}
		ring := make([]geomath.Vec3, 0, len(idxList))
		valid := true
		for _, iv := range idxList {
			idx, ok := indexValue(iv)
			if !ok || idx < 0 || idx >= len(positions) {
				valid = false
				break
			}
			ring = append(ring, positions[idx])
		}
		if !valid {
			faceFailures++
			continue
		}
		points, indices, ok := triangulateFace3D(ring, nil)
		if !ok {
			faceFailures++
			continue
		}
		normal := faceNormalNewell(points)
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.AppendTriangle(points[indices[i]], points[indices[i+1]], points[indices[i+2]], normal)
		}
	}
	if faceCount > 0 && faceFailures == faceCount {
		return Mesh{}, errorf(e.ExpressID, "polygonal face set has no triangulatable faces")
	}
	return mesh, nil
}

// indexValue converts a 1-based IFC list index to a 0-based slice index.
func indexValue(v decode.Value) (int, bool) {
	f, ok := realFromValue(v)
	if !ok {
		return 0, false
	}
	return int(f) - 1, true
}

func inBounds(positions []geomath.Vec3, idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= len(positions) {
			return false
		}
	}
	return true
}
