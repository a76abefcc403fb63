// Package ifcmodel wires the tokenizer, decoder, schema, columnar store,
// relationship graph, spatial hierarchy, placement resolver, geometry
// processor, coordinate handler, and mesh stream into a single pipeline: a
// Loader turns raw STEP bytes into a queryable Model, transparently
// short-circuiting through the on-disk bundle cache when available.
package ifcmodel

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"time"

	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/config"
	"github.com/arx-os/ifclite/internal/coordinate"
	"github.com/arx-os/ifclite/internal/decode"
	"github.com/arx-os/ifclite/internal/filecache"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/metrics"
	"github.com/arx-os/ifclite/internal/placement"
	"github.com/arx-os/ifclite/internal/rawmodel"
	"github.com/arx-os/ifclite/internal/step"
	"github.com/arx-os/ifclite/internal/stream"
	"github.com/google/uuid"
)

// Loader assembles a Model from STEP source bytes, applying the resolved
// Config's tessellation and coordinate-threshold overrides once at
// construction so every geometry.Processor and coordinate.Handler it builds
// afterward picks them up.
type Loader struct {
	cfg *config.Config
	m   *metrics.Metrics
	log *logger.Logger
	fed *FederationTable
}

// NewLoader applies cfg's geometry and coordinate overrides globally (they
// are package-level settings, not per-Processor state) and returns a Loader
// ready to parse files against them.
func NewLoader(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *Loader {
	geometry.SetCircleSegments(cfg.Geometry.CircleSegments)
	geometry.SetDegenerateCleanup(cfg.Geometry.CSGCleanupEnabled, cfg.Geometry.DegenerateEpsilon)
	coordinate.SetThresholds(cfg.Coordinate.LargeCoordinateThreshold, cfg.Coordinate.MaxCoordinateThreshold)
	return &Loader{cfg: cfg, m: m, log: log, fed: NewFederationTable()}
}

// Federation exposes the Loader's id-offset allocator, so a caller
// federating several source files can inspect the offsets LoadModel chose.
func (l *Loader) Federation() *FederationTable { return l.fed }

// Load parses r as a standalone (non-federated) model under a freshly
// generated model id.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Model, error) {
	return l.LoadModel(ctx, uuid.New(), r)
}

// LoadModel loads r under modelID. It checks the bundle cache first (keyed
// by the sha256 of the raw bytes); on a miss it runs the full
// tokenize/decode/build pipeline and reserves a federation offset window
// sized to the source's highest express id. A cache hit reserves no window.
func (l *Loader) LoadModel(ctx context.Context, modelID uuid.UUID, r io.Reader) (*Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidStep, "reading source")
	}
	hash := sha256.Sum256(raw)

	if l.cfg.Cache.Enabled {
		if bundle, ok, err := filecache.Load(l.cachePath(hash), hash); err == nil && ok {
			l.m.RecordCacheHit()
			return modelFromBundle(modelID, bundle), nil
		}
		l.m.RecordCacheMiss()
	}

	l.m.RecordLoadStarted()
	started := time.Now()
	model, err := l.parse(ctx, modelID, raw)
	l.m.RecordLoadFinished(float64(len(raw)), time.Since(started).Seconds(), err)
	return model, err
}

func (l *Loader) cachePath(hash [32]byte) string {
	return filepath.Join(l.cfg.CacheDir, hex.EncodeToString(hash[:])+".ifccache")
}

// parse runs the full C2-C11 pipeline over raw bytes.
func (l *Loader) parse(ctx context.Context, modelID uuid.UUID, raw []byte) (*Model, error) {
	table := intern.New()
	src := rawmodel.NewStore()
	errs := apperrors.NewErrorGroup()

	tok := step.New(raw)
	var roots []rawmodel.Entity
	decoded := 0
	maxExpressID := uint32(0)
	decodeStart := time.Now()
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		ref, ok, err := tok.Next()
		if err != nil {
			if apperrors.IsFatal(err) {
				return nil, err
			}
			errs.Add(err)
			break
		}
		if !ok {
			break
		}
		if ref.ExpressID > maxExpressID {
			maxExpressID = ref.ExpressID
		}

		values, err := decode.Decode(ref.ExpressID, ref.TypeName, ref.Args(raw), table)
		if err != nil {
			if apperrors.IsFatal(err) {
				return nil, err
			}
			errs.Add(err)
		}
		entity := rawmodel.Entity{ExpressID: ref.ExpressID, TypeName: ref.TypeName, Values: values}
		src.Add(entity)
		decoded++
		if isRootDescendant(ref.TypeName) {
			roots = append(roots, entity)
		}
	}
	l.m.RecordDecode(decoded, time.Since(decodeStart).Seconds())
	l.fed.Reserve(modelID, maxExpressID)

	g := graph.ScanRelationships(src).Build()
	h := hierarchy.Build(src, g, l.log)
	places := placement.NewResolver(src, table)
	proc := geometry.NewProcessor(src, table, places, g, l.log)
	coords := coordinate.New()

	entities, properties, quantities := buildTables(src, table, g, h, roots)
	items := buildStreamItems(roots)
	session := stream.NewSession(items, proc, coords)

	return &Model{
		ModelID:    modelID,
		Entities:   entities,
		Properties: properties,
		Quantities: quantities,
		Graph:      g,
		Spatial:    h,
		Strings:    table,
		source:     src,
		places:     places,
		Stream:     session,
		Coord:      coords.Info(),
		Errors:     errs.Errors(),
	}, nil
}

// buildStreamItems collects one stream.Item per root entity carrying a
// non-null Representation attribute, for the mesh stream (C11) to consume.
// ObjectPlacement is looked up the same way but its absence isn't
// disqualifying: an element with no placement just meshes in local space
// (ObjectPlacementRef stays 0, which ResolveElement treats as identity).
func buildStreamItems(roots []rawmodel.Entity) []stream.Item {
	var items []stream.Item
	for _, e := range roots {
		repIdx, ok := rootAttr(e.TypeName, "Representation")
		if !ok {
			continue
		}
		repRef, ok := refVal(e, repIdx)
		if !ok {
			continue
		}
		var placementRef uint32
		if placeIdx, ok := rootAttr(e.TypeName, "ObjectPlacement"); ok {
			placementRef, _ = refVal(e, placeIdx)
		}
		items = append(items, stream.Item{
			ExpressID:          e.ExpressID,
			TypeName:           e.TypeName,
			ObjectPlacementRef: placementRef,
			RepresentationRef:  repRef,
		})
	}
	return items
}

// modelFromBundle reconstructs a Model directly from a cached Bundle,
// skipping the tokenize/decode/mesh pipeline entirely. The raw decoded
// entities and placement resolver aren't persisted to disk, so Engine()
// and LODGenerator() degrade accordingly (source is nil, places is nil).
func modelFromBundle(modelID uuid.UUID, b *filecache.Bundle) *Model {
	return &Model{
		ModelID:         modelID,
		Entities:        b.Entities,
		Properties:      b.Properties,
		Quantities:      b.Quantities,
		Graph:           b.Graph,
		Spatial:         b.Spatial,
		Strings:         b.Strings,
		FromCache:       true,
		CachedMeshes:    b.Meshes,
		CachedInstances: b.Instances,
	}
}

// WriteCache drains m.Stream to completion, pools the resulting meshes,
// and persists everything needed to reconstruct this Model without
// re-parsing (spec C12). It is a no-op if m was itself loaded from cache,
// or has no stream left to drain (already fully consumed elsewhere).
func (m *Model) WriteCache(ctx context.Context, cfg *config.Config, sourceHash [32]byte) error {
	if m.FromCache || m.Stream == nil {
		return nil
	}
	start := time.Now()

	pool := filecache.NewMeshPool()
	var instances []filecache.Instance
	pulled := false
	for {
		ev, err := m.Stream.Next(ctx)
		if err != nil {
			if err == stream.ErrSessionDone {
				break
			}
			return err
		}
		pulled = true
		switch ev.Kind {
		case stream.KindBatch:
			for _, em := range ev.Batch.Meshes {
				idx := pool.Add(em.Mesh)
				instances = append(instances, filecache.Instance{
					MeshIndex: idx,
					Transform: filecache.IdentityTransform,
					Color:     em.Color,
					ExpressID: em.ExpressID,
				})
			}
		case stream.KindColorUpdate:
			for id, c := range ev.ColorUpdate.Updates {
				for i := range instances {
					if instances[i].ExpressID == id {
						instances[i].Color = c
					}
				}
			}
		case stream.KindComplete:
		}
	}
	if !pulled {
		return nil
	}

	bundle := &filecache.Bundle{
		Entities:   m.Entities,
		Properties: m.Properties,
		Quantities: m.Quantities,
		Graph:      m.Graph,
		Strings:    m.Strings,
		Spatial:    m.Spatial,
		Meshes:     pool.Meshes(),
		Instances:  instances,
		BuildTime:  time.Since(start),
	}
	path := filepath.Join(cfg.CacheDir, hex.EncodeToString(sourceHash[:])+".ifccache")
	return filecache.Save(path, sourceHash, bundle)
}

// HashSource is a small convenience wrapper so callers that read a file
// once (to compute the cache key ahead of LoadModel) don't need to import
// crypto/sha256 themselves.
func HashSource(raw []byte) [32]byte {
	return sha256.Sum256(raw)
}
