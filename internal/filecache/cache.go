package filecache

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
)

// Bundle is everything a Loader needs to skip re-parsing and re-meshing a
// source file: the columnar entity/property/quantity tables, the
// relationship graph, the interned string table they all reference, the
// spatial tree, and the deduplicated mesh pool with its per-element
// instances.
type Bundle struct {
	Entities   *store.EntityTable
	Properties *store.PropertyTable
	Quantities *store.QuantityTable
	Graph      *graph.Graph
	Strings    *intern.Table
	Spatial    *hierarchy.Hierarchy // may be nil, or have only Root populated after Load
	Meshes     []geometry.Mesh      // deduplicated pool, index-ordered
	Instances  []Instance
	BuildTime  time.Duration // wall time spent producing Meshes/Instances; zero if unknown
}

// Save writes b as a content-addressed cache file at path, keyed by
// sourceHash (typically sha256 of the original STEP bytes). The write is
// atomic: it writes to a temp file in the same directory and renames over
// path, so a reader never observes a partially-written cache file.
func Save(path string, sourceHash [32]byte, b *Bundle) error {
	// encodeSpatial interns type names into b.Strings as a side effect, so
	// it must run before the STRINGS section is captured below, or those
	// names would be missing from the persisted string table.
	var spatialPayload []byte
	if b.Spatial != nil {
		spatialPayload = encodeSpatial(b.Spatial, b.Strings)
	}

	sections := []Section{
		{Tag: TagStrings, Payload: encodeStrings(b.Strings)},
		{Tag: TagEntities, Payload: encodeEntities(b.Entities)},
	}
	if b.Properties != nil {
		sections = append(sections, Section{Tag: TagProperties, Payload: encodeProperties(b.Properties)})
	}
	if b.Quantities != nil {
		sections = append(sections, Section{Tag: TagQuantities, Payload: encodeQuantities(b.Quantities)})
	}
	if b.Graph != nil {
		edges := b.Graph.AllEdges()
		sections = append(sections, Section{Tag: TagRelationshipsFwd, Payload: encodeEdges(edges)})
		sections = append(sections, Section{Tag: TagRelationshipsInv, Payload: encodeEdges(swapEdges(edges))})
	}
	if b.Spatial != nil {
		sections = append(sections, Section{Tag: TagSpatial, Payload: spatialPayload})
	}
	if b.Meshes != nil {
		sections = append(sections, Section{Tag: TagMeshes, Payload: encodeMeshes(b.Meshes)})
	}
	if b.Instances != nil {
		sections = append(sections, Section{Tag: TagInstances, Payload: encodeInstances(b.Instances)})
	}
	sections = append(sections, Section{Tag: TagStats, Payload: encodeStats(statsOf(b))})
	return writeAtomic(path, sourceHash, sections)
}

func swapEdges(edges []graph.Edge) []graph.Edge {
	out := make([]graph.Edge, len(edges))
	for i, e := range edges {
		out[i] = graph.Edge{Source: e.Target, Target: e.Source, Type: e.Type, RelID: e.RelID}
	}
	return out
}

func writeAtomic(path string, hash [32]byte, sections []Section) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".filecache-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := writeContainer(tmp, hash, sections); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the cache file at path and returns (bundle, true, nil) only
// when it exists, parses, and its stored hash matches expectedHash. Any
// other outcome — missing file, bad magic, version mismatch, hash
// mismatch, or a decode-level corruption — is reported as a plain miss
// (false, nil), matching spec: a stale or foreign cache file is not an
// error, just nothing to reuse. Only an I/O error reading the file itself
// is returned as err.
func Load(path string, expectedHash [32]byte) (*Bundle, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	hash, sections, err := readContainer(f)
	if errors.Is(err, ErrBadMagic) || errors.Is(err, ErrVersionMismatch) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if hash != expectedHash {
		return nil, false, nil
	}

	b, err := decodeBundle(sections)
	if err != nil {
		return nil, false, nil
	}
	return b, true, nil
}

func decodeBundle(sections []Section) (*Bundle, error) {
	stringsPayload, ok := sectionByTag(sections, TagStrings)
	if !ok {
		return nil, errors.New("filecache: missing STRINGS section")
	}
	table, err := decodeStrings(stringsPayload)
	if err != nil {
		return nil, err
	}

	entitiesPayload, ok := sectionByTag(sections, TagEntities)
	if !ok {
		return nil, errors.New("filecache: missing ENTITIES section")
	}
	entities, _, err := decodeEntities(entitiesPayload)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Entities: entities, Strings: table}

	if payload, ok := sectionByTag(sections, TagProperties); ok {
		props, err := decodeProperties(payload)
		if err != nil {
			return nil, err
		}
		b.Properties = props
	}

	if payload, ok := sectionByTag(sections, TagQuantities); ok {
		qty, err := decodeQuantities(payload)
		if err != nil {
			return nil, err
		}
		b.Quantities = qty
	}

	if payload, ok := sectionByTag(sections, TagRelationshipsFwd); ok {
		edges, err := decodeEdges(payload)
		if err != nil {
			return nil, err
		}
		gb := graph.NewBuilder()
		for _, e := range edges {
			gb.Add(e)
		}
		b.Graph = gb.Build()
	}

	if payload, ok := sectionByTag(sections, TagSpatial); ok {
		root, err := decodeSpatial(payload, table)
		if err != nil {
			return nil, err
		}
		b.Spatial = &hierarchy.Hierarchy{Root: root}
	}

	if payload, ok := sectionByTag(sections, TagMeshes); ok {
		meshes, err := decodeMeshes(payload)
		if err != nil {
			return nil, err
		}
		b.Meshes = meshes
	}

	if payload, ok := sectionByTag(sections, TagInstances); ok {
		instances, err := decodeInstances(payload)
		if err != nil {
			return nil, err
		}
		b.Instances = instances
	}

	if payload, ok := sectionByTag(sections, TagStats); ok {
		stats, err := decodeStats(payload)
		if err != nil {
			return nil, err
		}
		b.BuildTime = stats.BuildTime
	}

	return b, nil
}
