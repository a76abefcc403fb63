// Package query implements the read-side traversal API (C13): by-type,
// by-spatial-container, and by-property-predicate lookups over the built
// columnar store, relationship graph, and spatial tree. Engine never
// mutates any of the tables it wraps; it is safe to share across
// goroutines once built.
package query

import (
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/store"
)

// Engine bundles the tables produced by a load: entities/properties/
// quantities from C5, the relationship graph from C6, the spatial tree
// from C8, the shared string table, and the raw decoded source (needed
// for attribute-level lookups, like IfcSite georeferencing, that the
// columnar store doesn't carry as dedicated columns).
type Engine struct {
	entities   *store.EntityTable
	properties *store.PropertyTable
	quantities *store.QuantityTable
	graph      *graph.Graph
	spatial    *hierarchy.Hierarchy
	strings    *intern.Table
	source     *rawmodel.Store
}

// NewEngine wraps the given tables. source may be nil if raw-attribute
// queries (ProjectLocation) aren't needed; spatial may be nil for a model
// with no IfcProject.
func NewEngine(entities *store.EntityTable, properties *store.PropertyTable, quantities *store.QuantityTable, g *graph.Graph, spatial *hierarchy.Hierarchy, strings *intern.Table, source *rawmodel.Store) *Engine {
	return &Engine{
		entities:   entities,
		properties: properties,
		quantities: quantities,
		graph:      g,
		spatial:    spatial,
		strings:    strings,
		source:     source,
	}
}

// ByType returns every entity row whose canonical type name matches
// exactly (uppercase, e.g. "IFCWALL").
func (e *Engine) ByType(typeName string) []store.EntityRow {
	return e.entities.ByTypeName(typeName)
}

// ByExpressID resolves a single entity row by its express id.
func (e *Engine) ByExpressID(id uint32) (store.EntityRow, bool) {
	return e.entities.ByExpressID(id)
}

// EntityProperties returns every property row attached to entityID across
// all property sets.
func (e *Engine) EntityProperties(entityID uint32) []store.PropertyRow {
	if e.properties == nil {
		return nil
	}
	return e.properties.ByEntity(entityID)
}

// EntityQuantities returns every quantity row attached to entityID.
func (e *Engine) EntityQuantities(entityID uint32) []store.QuantityRow {
	if e.quantities == nil {
		return nil
	}
	return e.quantities.ByEntity(entityID)
}

// Related returns the express ids reachable from id under relType and
// direction, a thin pass-through to the underlying graph for callers that
// don't need a full entity row.
func (e *Engine) Related(id uint32, relType graph.RelType, dir graph.Direction) []uint32 {
	if e.graph == nil {
		return nil
	}
	return e.graph.GetRelated(id, relType, dir)
}

// InSpatialContainer returns every entity row directly contained in
// containerID (a storey, building, site, or space express id), dispatching
// on the container's discovered node type. Returns nil if containerID
// isn't a known spatial node, or no tree was built (no IfcProject).
func (e *Engine) InSpatialContainer(containerID uint32) []store.EntityRow {
	if e.spatial == nil {
		return nil
	}
	node, ok := e.spatial.Node(containerID)
	if !ok {
		return nil
	}

	var elementIDs []uint32
	switch node.Type {
	case "IFCBUILDINGSTOREY":
		elementIDs = e.spatial.ByStorey(containerID)
	case "IFCBUILDING":
		elementIDs = e.spatial.ByBuilding(containerID)
	case "IFCSITE":
		elementIDs = e.spatial.BySite(containerID)
	case "IFCSPACE":
		elementIDs = e.spatial.BySpace(containerID)
	default:
		elementIDs = node.Elements
	}

	rows := make([]store.EntityRow, 0, len(elementIDs))
	for _, id := range elementIDs {
		if row, ok := e.entities.ByExpressID(id); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// ContainingStorey resolves the storey express id that elementID was
// placed in by C8's containment walk.
func (e *Engine) ContainingStorey(elementID uint32) (uint32, bool) {
	if e.spatial == nil {
		return 0, false
	}
	return e.spatial.ElementStorey(elementID)
}

// StoreyElevation returns the numeric elevation recorded for storeyID, if
// the source model supplied one.
func (e *Engine) StoreyElevation(storeyID uint32) (float64, bool) {
	if e.spatial == nil {
		return 0, false
	}
	return e.spatial.StoreyElevation(storeyID)
}
