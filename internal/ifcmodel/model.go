package ifcmodel

import (
	"github.com/arx-os/ifclite/internal/coordinate"
	"github.com/arx-os/ifclite/internal/filecache"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/lod"
	"github.com/arx-os/ifclite/internal/placement"
	"github.com/arx-os/ifclite/internal/query"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/arx-os/ifclite/internal/stream"
	"github.com/google/uuid"
)

// Model is the assembled result of a Load: the queryable entity store, the
// relationship graph, the spatial hierarchy, and whatever the caller needs
// to either pull the geometry stream (a fresh parse) or read the mesh pool
// directly (a cache hit).
type Model struct {
	ModelID uuid.UUID

	Entities   *store.EntityTable
	Properties *store.PropertyTable
	Quantities *store.QuantityTable
	Graph      *graph.Graph
	Spatial    *hierarchy.Hierarchy
	Strings    *intern.Table

	// source is nil for a cache hit: the raw decoded entities aren't
	// persisted to disk, only the derived tables are.
	source *rawmodel.Store
	places *placement.Resolver

	// Stream is non-nil only for a fresh parse; a cache hit leaves it nil
	// and populates CachedMeshes/CachedInstances instead.
	Stream *stream.Session

	FromCache       bool
	CachedMeshes    []geometry.Mesh
	CachedInstances []filecache.Instance

	Coord coordinate.Info

	// Errors holds the non-fatal errors the tokenizer and decoder returned
	// during parse (such as schema arity mismatches); the load continues
	// past them. Failures while resolving geometry items in Stream are not
	// added here.
	Errors []error
}

// Engine builds a query.Engine (C13) over this model's tables. source is
// nil on a cache hit, which query.Engine tolerates by degrading raw
// attribute lookups rather than failing.
func (m *Model) Engine() *query.Engine {
	return query.NewEngine(m.Entities, m.Properties, m.Quantities, m.Graph, m.Spatial, m.Strings, m.source)
}

// LODGenerator builds an lod.Generator (C14) over this model's placement
// resolver and quantity table. Returns nil on a cache hit, where no
// placement resolver was retained (cached bundles carry finished meshes,
// not placement inputs to regenerate placeholders from).
func (m *Model) LODGenerator() *lod.Generator {
	if m.places == nil {
		return nil
	}
	return lod.NewGenerator(m.places, m.Quantities)
}
