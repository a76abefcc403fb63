package geometry

import (
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/graph"
)

var (
	idxOpeningObjectPlacement = mustIndex("IFCOPENINGELEMENT", "ObjectPlacement")
	idxOpeningRepresentation  = mustIndex("IFCOPENINGELEMENT", "Representation")
)

// subtractOpenings punches every IfcOpeningElement voiding hostID (spec
// §3's VoidsElement relationship) out of hostMesh, which is already in
// world space. True mesh-mesh CSG is out of scope here, same as
// processBooleanResult's own DIFFERENCE fallback note: each opening is
// approximated by its world-space bounding box, and any host triangle
// whose centroid falls inside that box is dropped. That punches a hole
// the size of the opening's extent rather than an exact boolean cut, but
// leaves the host mesh with a real hole where the opening sits.
func (p *Processor) subtractOpenings(hostMesh Mesh, hostID uint32) Mesh {
	if p.graph == nil {
		return hostMesh
	}
	openingIDs := p.graph.GetRelated(hostID, graph.VoidsElement, graph.Forward)
	if len(openingIDs) == 0 {
		return hostMesh
	}

	var boxes []geomath.AABB
	for _, id := range openingIDs {
		if box, ok := p.openingWorldBox(id); ok {
			boxes = append(boxes, box)
		}
	}
	if len(boxes) == 0 {
		return hostMesh
	}
	return punchBoxes(hostMesh, boxes)
}

// openingWorldBox resolves an IfcOpeningElement's own Representation and
// ObjectPlacement into a world-space AABB, independent of the host's
// placement chain (the resolver composes the opening's full
// IfcLocalPlacement chain on its own, typically rooted at the host wall).
func (p *Processor) openingWorldBox(openingID uint32) (geomath.AABB, bool) {
	e, ok := p.src.Entity(openingID)
	if !ok {
		return geomath.AABB{}, false
	}
	repRef, ok := refAttr(e, idxOpeningRepresentation)
	if !ok {
		return geomath.AABB{}, false
	}
	local, ok := p.bestEffortRepresentationMesh(repRef)
	if !ok {
		return geomath.AABB{}, false
	}

	world := geomath.Identity()
	if placementRef, ok := refAttr(e, idxOpeningObjectPlacement); ok {
		if m, err := p.places.ResolvePlacement(placementRef); err == nil {
			world = m
		}
	}

	box := geomath.EmptyAABB()
	for _, v := range local.Positions {
		box = box.Expand(world.MulPoint(v))
	}
	return box, true
}

// bestEffortRepresentationMesh merges every supported item under
// representationRef, dropping per-item failures rather than recording
// them: it only ever feeds an opening's bounding-box approximation, never
// the rendered output, so an unresolvable sub-item just shrinks the box
// instead of failing the whole cut.
func (p *Processor) bestEffortRepresentationMesh(representationRef uint32) (Mesh, bool) {
	shapeRef, ok := p.src.Entity(representationRef)
	if !ok {
		return Mesh{}, false
	}
	repRefs, ok := listAttr(shapeRef, idxProductDefShapeReps)
	if !ok {
		return Mesh{}, false
	}

	var mesh Mesh
	for _, v := range repRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		rep, ok := p.src.Entity(v.Ref)
		if !ok || rep.TypeName != "IFCSHAPEREPRESENTATION" {
			continue
		}
		itemRefs, ok := listAttr(rep, idxRepresentationItems)
		if !ok {
			continue
		}
		for _, iv := range itemRefs {
			if iv.Kind != decode.KindRef {
				continue
			}
			if m, err := p.resolveItem(iv.Ref); err == nil {
				mesh.Merge(m)
			}
		}
	}
	return mesh, !mesh.IsEmpty()
}

// punchBoxes drops every triangle of mesh whose centroid falls inside any
// of boxes, keeping the rest and each kept triangle's own per-vertex
// normals (unlike AppendTriangle, which would flatten them to one).
func punchBoxes(mesh Mesh, boxes []geomath.AABB) Mesh {
	var out Mesh
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		ia, ib, ic := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		a, b, c := mesh.Positions[ia], mesh.Positions[ib], mesh.Positions[ic]
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		if centroidInAny(centroid, boxes) {
			continue
		}
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, a, b, c)
		out.Normals = append(out.Normals, mesh.Normals[ia], mesh.Normals[ib], mesh.Normals[ic])
		out.Indices = append(out.Indices, base, base+1, base+2)
	}
	return out
}

func centroidInAny(v geomath.Vec3, boxes []geomath.AABB) bool {
	for _, box := range boxes {
		if box.Contains(v) {
			return true
		}
	}
	return false
}
