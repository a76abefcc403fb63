package geometry

import (
	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/placement"
	"github.com/arx-os/ifclite/internal/rawmodel"
)

// degenerateAreaEps is the minimum triangle area (in scaled/meter units)
// kept after a boolean-result cleanup pass (spec §4.8: "Degenerate
// triangles (area < ε) dropped"). Tunable via SetDegenerateCleanup.
var (
	degenerateAreaEps    = 1e-9
	degenerateCleanupOff bool
)

// SetDegenerateCleanup configures the post-tessellation degenerate-triangle
// pass every ResolveElement call applies: enabled toggles it off entirely,
// eps overrides the minimum kept triangle area when enabled.
func SetDegenerateCleanup(enabled bool, eps float64) {
	degenerateCleanupOff = !enabled
	if eps > 0 {
		degenerateAreaEps = eps
	}
}

// supportedRepresentations is the set of RepresentationIdentifier values
// the processor meshes; anything else (e.g. Axis, FootPrint, Annotation2D)
// is skipped per spec §4.8 step 1.
var supportedRepresentations = map[string]bool{
	"BODY": true, "SWEPTSOLID": true, "BREP": true, "CSG": true,
	"CLIPPING": true, "SURFACEMODEL": true, "TESSELLATION": true,
	"MAPPEDREPRESENTATION": true, "ADVANCEDSWEPTSOLID": true,
}

var (
	idxProductDefShapeReps   = mustIndex("IFCPRODUCTDEFINITIONSHAPE", "Representations")
	idxRepresentationIdent   = mustIndex("IFCSHAPEREPRESENTATION", "RepresentationIdentifier")
	idxRepresentationItems   = mustIndex("IFCSHAPEREPRESENTATION", "Items")
)

// Processor resolves IfcProductDefinitionShape representations into local
// (unit-scaled) meshes, dispatching per item type with the spec's per-item
// failure policy.
type Processor struct {
	src    *rawmodel.Store
	table  *intern.Table
	places *placement.Resolver
	graph  *graph.Graph
	scale  float64
	log    *logger.Logger
	mapped *mappedItemCache
}

// NewProcessor builds a Processor sharing places' already-resolved unit
// scale, so profile dimensions and extrusion depths convert to the same
// meter space as resolved placements. g supplies IfcRelVoidsElement
// neighbors for opening subtraction; a nil g just skips that step.
func NewProcessor(src *rawmodel.Store, table *intern.Table, places *placement.Resolver, g *graph.Graph, log *logger.Logger) *Processor {
	return &Processor{
		src: src, table: table, places: places, graph: g,
		scale: places.UnitScale(), log: log,
		mapped: newMappedItemCache(),
	}
}

// ResolveElement walks representationRef (an IfcProductDefinitionShape),
// merges every supported shape representation's items into one mesh in
// the element's local placement space, then carries that mesh into world
// space by resolving objectPlacementRef's IfcLocalPlacement chain (C7) and
// punches out any IfcOpeningElement voiding this element (spec §8
// scenario 5) before the degenerate-triangle cleanup pass.
func (p *Processor) ResolveElement(expressID, objectPlacementRef, representationRef uint32) ElementResult {
	result := ElementResult{ExpressID: expressID}
	shapeRef, ok := p.src.Entity(representationRef)
	if !ok {
		result.Failed = append(result.Failed, FailedItem{ExpressID: expressID, Reason: "representation not found"})
		return result
	}
	repRefs, ok := listAttr(shapeRef, idxProductDefShapeReps)
	if !ok {
		result.Failed = append(result.Failed, FailedItem{ExpressID: expressID, Reason: "no representations"})
		return result
	}

	result.Color = DefaultColor
	colorResolved := false
	succeeded := 0
	for _, v := range repRefs {
		if v.Kind != decode.KindRef {
			continue
		}
		rep, ok := p.src.Entity(v.Ref)
		if !ok || rep.TypeName != "IFCSHAPEREPRESENTATION" {
			continue
		}
		ident, ok := strAttr(rep, idxRepresentationIdent, p.table)
		if !ok || !supportedRepresentations[normalizeIdent(ident)] {
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
			mesh, err := p.resolveItem(iv.Ref)
			if err != nil {
				result.Failed = append(result.Failed, FailedItem{ExpressID: iv.Ref, Reason: err.Error()})
				continue
			}
			result.Mesh.Merge(mesh)
			succeeded++
			if !colorResolved {
				if c := p.resolveItemColor(iv.Ref); c != DefaultColor {
					result.Color = c
					colorResolved = true
				}
			}
		}
	}
	world := geomath.Identity()
	if objectPlacementRef != 0 {
		if m, err := p.places.ResolvePlacement(objectPlacementRef); err == nil {
			world = m
		}
	}
	result.Mesh.Transform(world)
	result.Mesh = p.subtractOpenings(result.Mesh, expressID)

	if !degenerateCleanupOff {
		result.Mesh.DropDegenerate(degenerateAreaEps)
	}
	result.Partial = len(result.Failed) > 0 && succeeded > 0
	return result
}

func normalizeIdent(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 32
		}
		out = append(out, c)
	}
	return string(out)
}

// resolveItem dispatches one representation item by its concrete type.
func (p *Processor) resolveItem(id uint32) (Mesh, error) {
	e, ok := p.src.Entity(id)
	if !ok {
		return Mesh{}, errorf(id, "item not found")
	}
	switch e.TypeName {
	case "IFCEXTRUDEDAREASOLID":
		return p.processExtrudedAreaSolid(e)
	case "IFCREVOLVEDAREASOLID":
		return p.processRevolvedAreaSolid(e)
	case "IFCFACETEDBREP", "IFCCLOSEDSHELL":
		return p.processFacetedBrep(e)
	case "IFCTRIANGULATEDFACESET":
		return p.processTriangulatedFaceSet(e)
	case "IFCPOLYGONALFACESET":
		return p.processPolygonalFaceSet(e)
	case "IFCSWEPTDISKSOLID":
		return p.processSweptDiskSolid(e)
	case "IFCBOOLEANCLIPPINGRESULT", "IFCBOOLEANRESULT":
		return p.processBooleanResult(e)
	case "IFCMAPPEDITEM":
		return p.processMappedItem(e)
	default:
		return Mesh{}, errorf(id, "unsupported item type "+e.TypeName)
	}
}

// resolveScaledProfile resolves and unit-scales a profile definition.
func (p *Processor) resolveScaledProfile(ref uint32) (Profile, error) {
	prof, err := ResolveProfile(p.src, p.table, ref)
	if err != nil {
		return Profile{}, err
	}
	return scaleProfile(prof, p.scale), nil
}

func scaleProfile(p Profile, s float64) Profile {
	out := Profile{Outer: scalePoints(p.Outer, s)}
	if len(p.Holes) > 0 {
		out.Holes = make([][]geomath.Vec2, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = scalePoints(h, s)
		}
	}
	return out
}

func scalePoints(pts []geomath.Vec2, s float64) []geomath.Vec2 {
	out := make([]geomath.Vec2, len(pts))
	for i, v := range pts {
		out[i] = geomath.Vec2{X: v.X * s, Y: v.Y * s}
	}
	return out
}
