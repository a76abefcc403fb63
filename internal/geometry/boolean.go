package geometry

import (
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

var (
	idxBooleanOperator      = mustIndex("IFCBOOLEANRESULT", "Operator")
	idxBooleanFirstOperand  = mustIndex("IFCBOOLEANRESULT", "FirstOperand")
	idxBooleanSecondOperand = mustIndex("IFCBOOLEANRESULT", "SecondOperand")

	idxHalfSpaceBaseSurface    = mustIndex("IFCHALFSPACESOLID", "BaseSurface")
	idxHalfSpaceAgreementFlag  = mustIndex("IFCHALFSPACESOLID", "AgreementFlag")
	idxPlanePosition           = mustIndex("IFCPLANE", "Position")
)

// processBooleanResult evaluates a boolean operation between two solid
// operands. Clipping against a half-space (the common case for wall/slab
// openings and sloped cuts) is resolved exactly via plane clipping; a
// DIFFERENCE/UNION/INTERSECTION between two arbitrary solids would need a
// full CSG kernel, which is out of scope here, so those fall back to a
// merge (UNION-like) of both operands' meshes. The merge returns no error,
// so the element is not marked partial; an unresolvable second operand or
// half-space likewise returns the first operand's mesh unchanged.
func (p *Processor) processBooleanResult(e rawmodel.Entity) (Mesh, error) {
	firstRef, ok := refAttr(e, idxBooleanFirstOperand)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "boolean result missing FirstOperand")
	}
	first, err := p.resolveItem(firstRef)
	if err != nil {
		return Mesh{}, err
	}

	secondRef, ok := refAttr(e, idxBooleanSecondOperand)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "boolean result missing SecondOperand")
	}
	secondEntity, ok := p.src.Entity(secondRef)
	if !ok {
		return Mesh{}, errorf(e.ExpressID, "boolean operand #%d not found", secondRef)
	}

	operator, _ := strAttr(e, idxBooleanOperator, p.table)
	if isHalfSpace(secondEntity.TypeName) {
		plane, agreement, ok := p.resolveHalfSpace(secondEntity)
		if !ok {
			return first, nil
		}
		keepPositive := !agreement
		if operator == "DIFFERENCE" {
			keepPositive = agreement
		}
		return clipMeshByPlane(first, plane, keepPositive), nil
	}

	second, err := p.resolveItem(secondRef)
	if err != nil {
		return first, nil
	}
	first.Merge(second)
	return first, nil
}

func isHalfSpace(typeName string) bool {
	return typeName == "IFCHALFSPACESOLID" || typeName == "IFCPOLYGONALBOUNDEDHALFSPACE"
}

type clipPlane struct {
	point  geomath.Vec3
	normal geomath.Vec3
}

func (p *Processor) resolveHalfSpace(e rawmodel.Entity) (clipPlane, bool, bool) {
	surfaceRef, ok := refAttr(e, idxHalfSpaceBaseSurface)
	if !ok {
		return clipPlane{}, false, false
	}
	surface, ok := p.src.Entity(surfaceRef)
	if !ok || surface.TypeName != "IFCPLANE" {
		return clipPlane{}, false, false
	}
	posRef, ok := refAttr(surface, idxPlanePosition)
	if !ok {
		return clipPlane{}, false, false
	}
	m, err := p.places.ResolvePlacement(posRef)
	if err != nil {
		return clipPlane{}, false, false
	}
	agreement, _ := boolAttr(e, idxHalfSpaceAgreementFlag)
	plane := clipPlane{
		point:  m.Translation(),
		normal: m.MulDirection(geomath.Vec3{X: 0, Y: 0, Z: 1}).Normalize(),
	}
	return plane, agreement, true
}

// clipMeshByPlane keeps triangles (clipped where they straddle plane) on
// the side matching keepPositive, using the Sutherland-Hodgman-style
// per-triangle clip against a single plane.
func clipMeshByPlane(mesh Mesh, plane clipPlane, keepPositive bool) Mesh {
	var out Mesh
	sign := 1.0
	if !keepPositive {
		sign = -1.0
	}
	side := func(v geomath.Vec3) float64 {
		return sign * v.Sub(plane.point).Dot(plane.normal)
	}
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		ia, ib, ic := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		tri := [3]geomath.Vec3{mesh.Positions[ia], mesh.Positions[ib], mesh.Positions[ic]}
		normal := mesh.Normals[ia]
		clipTriangle(&out, tri, normal, side)
	}
	return out
}

func clipTriangle(out *Mesh, tri [3]geomath.Vec3, normal geomath.Vec3, side func(geomath.Vec3) float64) {
	var inside []geomath.Vec3
	for i := 0; i < 3; i++ {
		a, b := tri[i], tri[(i+1)%3]
		sa, sb := side(a), side(b)
		if sa >= 0 {
			inside = append(inside, a)
		}
		if (sa >= 0) != (sb >= 0) {
			t := sa / (sa - sb)
			inside = append(inside, a.Add(b.Sub(a).Scale(t)))
		}
	}
	for i := 1; i+1 < len(inside); i++ {
		out.AppendTriangle(inside[0], inside[i], inside[i+1], normal)
	}
}
