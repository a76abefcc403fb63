// Package hierarchy builds the spatial containment tree (C8): a DFS walk
// of Aggregates forward edges from the unique IfcProject, populated with
// ContainsElements leaves and inverse lookup maps.
package hierarchy

import (
	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/schema"
)

var elevationIndex, hasElevationIndex = schema.Global().AttributeIndex("IFCBUILDINGSTOREY", "Elevation")

// Node is one spatial-structure entity (Project, Site, Building, Storey,
// or Space) discovered by the Aggregates walk. Name/GlobalId live on the
// entity's row in the columnar store (internal/store), not here.
type Node struct {
	ExpressID uint32
	Type      string
	Elevation float64
	HasElev   bool
	Children  []*Node
	Elements  []uint32
}

// Hierarchy is the built, read-only spatial tree plus its inverse maps.
type Hierarchy struct {
	Root *Node

	nodes            map[uint32]*Node
	byStorey         map[uint32][]uint32
	byBuilding       map[uint32][]uint32
	bySite           map[uint32][]uint32
	bySpace          map[uint32][]uint32
	elementToStorey  map[uint32]uint32
	storeyElevations map[uint32]float64
}

// Build walks the graph from src's unique IfcProject. Returns an empty
// Hierarchy (all maps empty, Root nil) if no IfcProject exists; downstream
// queries must tolerate this per spec.
func Build(src *rawmodel.Store, g *graph.Graph, log *logger.Logger) *Hierarchy {
	h := &Hierarchy{
		nodes:            make(map[uint32]*Node),
		byStorey:         make(map[uint32][]uint32),
		byBuilding:       make(map[uint32][]uint32),
		bySite:           make(map[uint32][]uint32),
		bySpace:          make(map[uint32][]uint32),
		elementToStorey:  make(map[uint32]uint32),
		storeyElevations: make(map[uint32]float64),
	}

	projects := src.ByType("IFCPROJECT")
	if len(projects) == 0 {
		return h
	}
	project := projects[0]
	h.Root = h.walk(project.ExpressID, src, g, log)
	h.collectElements(h.Root, src, g, log)
	h.indexInverse(h.Root)
	return h
}

// walk performs the DFS through Aggregates forward edges, creating one Node
// per visited entity.
func (h *Hierarchy) walk(id uint32, src *rawmodel.Store, g *graph.Graph, log *logger.Logger) *Node {
	e, ok := src.Entity(id)
	if !ok {
		return nil
	}
	n := &Node{ExpressID: id, Type: e.TypeName}
	if e.TypeName == "IFCBUILDINGSTOREY" && hasElevationIndex && len(e.Values) > elevationIndex {
		if elev, ok := realValue(e.Values[elevationIndex]); ok {
			n.Elevation = elev
			n.HasElev = true
		}
	}
	h.nodes[id] = n

	children := g.GetRelated(id, graph.Aggregates, graph.Forward)
	for _, childID := range children {
		if child := h.walk(childID, src, g, log); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// collectElements appends ContainsElements targets to the owning spatial
// node's elements[], applying a first-wins tie-break with a logged warning
// when an element is contained by more than one storey.
func (h *Hierarchy) collectElements(n *Node, src *rawmodel.Store, g *graph.Graph, log *logger.Logger) {
	if n == nil {
		return
	}
	related := g.GetRelated(n.ExpressID, graph.ContainsElements, graph.Forward)
	for _, elemID := range related {
		if owner, already := h.elementToStorey[elemID]; already {
			if log != nil {
				log.Warn("element %d already contained in storey %d, ignoring duplicate containment from %d", elemID, owner, n.ExpressID)
			}
			continue
		}
		n.Elements = append(n.Elements, elemID)
		h.elementToStorey[elemID] = n.ExpressID
	}
	for _, child := range n.Children {
		h.collectElements(child, src, g, log)
	}
}

// indexInverse populates byStorey/byBuilding/bySite/bySpace and
// storeyElevations from the built tree.
func (h *Hierarchy) indexInverse(n *Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case "IFCSITE":
		h.bySite[n.ExpressID] = n.Elements
	case "IFCBUILDING":
		h.byBuilding[n.ExpressID] = n.Elements
	case "IFCBUILDINGSTOREY":
		h.byStorey[n.ExpressID] = n.Elements
		if n.HasElev {
			h.storeyElevations[n.ExpressID] = n.Elevation
		}
	case "IFCSPACE":
		h.bySpace[n.ExpressID] = n.Elements
	}
	for _, child := range n.Children {
		h.indexInverse(child)
	}
}

// Node returns the discovered spatial node for expressId, if any.
func (h *Hierarchy) Node(expressID uint32) (*Node, bool) {
	n, ok := h.nodes[expressID]
	return n, ok
}

func (h *Hierarchy) ByStorey(storeyID uint32) []uint32     { return h.byStorey[storeyID] }
func (h *Hierarchy) ByBuilding(buildingID uint32) []uint32 { return h.byBuilding[buildingID] }
func (h *Hierarchy) BySite(siteID uint32) []uint32         { return h.bySite[siteID] }
func (h *Hierarchy) BySpace(spaceID uint32) []uint32       { return h.bySpace[spaceID] }

func (h *Hierarchy) ElementStorey(elementID uint32) (uint32, bool) {
	id, ok := h.elementToStorey[elementID]
	return id, ok
}

func (h *Hierarchy) StoreyElevation(storeyID uint32) (float64, bool) {
	elev, ok := h.storeyElevations[storeyID]
	return elev, ok
}

func realValue(v decode.Value) (float64, bool) {
	switch v.Kind {
	case decode.KindReal:
		return v.Real, true
	case decode.KindInteger:
		return float64(v.Int), true
	default:
		return 0, false
	}
}
