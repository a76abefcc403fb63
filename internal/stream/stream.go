// Package stream implements the batch emitter (C11): a pull-based session
// that walks an IFC file's geometric elements in priority order, grouping
// them into dynamically-sized batches and yielding them one at a time so a
// caller can start rendering before the whole file has been processed.
//
// The element order and batch sizing follow a static per-type priority
// table: simple geometry (walls, slabs, beams, columns) is meshed before
// elements that need boolean clipping (doors, windows), which in turn come
// before mapped-item families, since those need a first pass to resolve
// their mapping source and a second to instance it. Ties are broken by
// source order.
package stream

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/arx-os/ifclite/internal/coordinate"
	"github.com/arx-os/ifclite/internal/geometry"
)

// ErrSessionDone is returned by Next once the session has nothing left to
// yield: either Complete was already delivered, or the session was
// cancelled.
var ErrSessionDone = errors.New("stream: session done")

// priorityTier buckets element types by how cheap and order-independent
// their meshing is. Lower tiers are emitted first.
const (
	tierSimple   = 0 // walls, slabs, beams, columns
	tierOther    = 1 // roofs, coverings, plates, members, and anything unlisted
	tierOpening  = 2 // doors, windows: usually boolean-clipped against a wall
	tierMapped   = 3 // furnishing and other typically-mapped-item families
)

var typeTier = map[string]int{
	"IFCWALL":             tierSimple,
	"IFCWALLSTANDARDCASE": tierSimple,
	"IFCSLAB":             tierSimple,
	"IFCBEAM":             tierSimple,
	"IFCCOLUMN":           tierSimple,

	"IFCROOF":     tierOther,
	"IFCCOVERING": tierOther,
	"IFCPLATE":    tierOther,
	"IFCMEMBER":   tierOther,
	"IFCRAILING":  tierOther,
	"IFCSTAIR":    tierOther,
	"IFCRAMP":     tierOther,

	"IFCDOOR":   tierOpening,
	"IFCWINDOW": tierOpening,

	"IFCFURNISHINGELEMENT": tierMapped,
	"IFCFLOWTERMINAL":      tierMapped,
	"IFCFLOWFITTING":       tierMapped,
}

func tierOf(typeName string) int {
	if t, ok := typeTier[typeName]; ok {
		return t
	}
	return tierOther
}

// Item is one element queued for meshing: its express id, type (used only
// for priority ordering), the placement its mesh is carried into world
// space through, and the representation it resolves through.
type Item struct {
	ExpressID          uint32
	TypeName           string
	ObjectPlacementRef uint32
	RepresentationRef  uint32
}

// batchSizeFor returns the dynamic batch size for the b'th batch (0-based):
// small early batches for fast first paint, larger batches once the
// pipeline is warmed up.
func batchSizeFor(b int) int {
	switch {
	case b <= 2:
		return 50
	case b <= 5:
		return 275
	default:
		return 500
	}
}

// ElementMesh is one element's resolved mesh plus its currently-known
// display color, as carried by a Batch event.
type ElementMesh struct {
	ExpressID uint32
	Mesh      geometry.Mesh
	Color     geometry.RGBA
	Partial   bool
}

// Kind discriminates an Event's payload.
type Kind int

const (
	KindBatch Kind = iota
	KindColorUpdate
	KindError
	KindComplete
)

// BatchEvent carries one batch's resolved meshes.
type BatchEvent struct {
	Meshes         []ElementMesh
	TotalSoFar     int
	CoordinateInfo coordinate.Info
}

// ColorUpdateEvent revises the display color for elements whose style
// resolution finished after their introducing Batch was already emitted.
type ColorUpdateEvent struct {
	Updates map[uint32]geometry.RGBA
}

// CompleteEvent is the terminal event, delivered exactly once.
type CompleteEvent struct {
	TotalMeshes    int
	CoordinateInfo coordinate.Info
}

// Event is one value yielded by Session.Next. Exactly one of Batch,
// ColorUpdate, Err, Complete is set, matching Kind.
type Event struct {
	Kind        Kind
	Batch       *BatchEvent
	ColorUpdate *ColorUpdateEvent
	Err         error
	Complete    *CompleteEvent
}

// Session pulls elements off a priority-ordered queue, meshes them through
// a geometry.Processor, and yields them as Batch/ColorUpdate/Complete
// events. It is not safe for concurrent use by multiple goroutines.
type Session struct {
	mu sync.Mutex

	items     []Item
	cursor    int
	processor *geometry.Processor
	coords    *coordinate.Handler

	batchIndex int
	totalSoFar int

	pendingColors []ColorUpdateEvent

	cancelled bool
	completed bool
}

// NewSession sorts items into priority order (stable, so ties keep source
// order) and returns a Session ready to be pulled from.
func NewSession(items []Item, processor *geometry.Processor, coords *coordinate.Handler) *Session {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tierOf(sorted[i].TypeName) < tierOf(sorted[j].TypeName)
	})
	return &Session{items: sorted, processor: processor, coords: coords}
}

// Cancel sets the cooperative cancellation flag. The current Next call (if
// any) is not interrupted, but no further items are processed afterward and
// all not-yet-emitted batch state is dropped.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
	s.pendingColors = nil
}

// Next advances the session by one event. It returns ErrSessionDone once
// Complete has already been delivered or the session was cancelled, and
// ctx.Err() if ctx is done.
func (s *Session) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		s.Cancel()
		return Event{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return Event{}, ErrSessionDone
	}

	if len(s.pendingColors) > 0 {
		ev := s.pendingColors[0]
		s.pendingColors = s.pendingColors[1:]
		return Event{Kind: KindColorUpdate, ColorUpdate: &ev}, nil
	}

	if s.cursor >= len(s.items) {
		if s.completed {
			return Event{}, ErrSessionDone
		}
		s.completed = true
		return Event{Kind: KindComplete, Complete: &CompleteEvent{
			TotalMeshes:    s.totalSoFar,
			CoordinateInfo: s.coords.Info(),
		}}, nil
	}

	size := batchSizeFor(s.batchIndex)
	end := s.cursor + size
	if end > len(s.items) {
		end = len(s.items)
	}
	batchItems := s.items[s.cursor:end]
	s.cursor = end
	s.batchIndex++

	meshes := make([]ElementMesh, 0, len(batchItems))
	deferred := ColorUpdateEvent{Updates: make(map[uint32]geometry.RGBA)}
	for _, it := range batchItems {
		if s.cancelled {
			break
		}
		result := s.processor.ResolveElement(it.ExpressID, it.ObjectPlacementRef, it.RepresentationRef)
		positions := result.Mesh.Positions
		s.coords.Accept(positions)
		s.coords.Shift(positions)

		meshes = append(meshes, ElementMesh{
			ExpressID: it.ExpressID,
			Mesh:      result.Mesh,
			Color:     geometry.DefaultColor,
			Partial:   result.Partial,
		})
		deferred.Updates[it.ExpressID] = result.Color
	}
	s.totalSoFar += len(meshes)
	if len(deferred.Updates) > 0 {
		s.pendingColors = append(s.pendingColors, deferred)
	}

	return Event{Kind: KindBatch, Batch: &BatchEvent{
		Meshes:         meshes,
		TotalSoFar:     s.totalSoFar,
		CoordinateInfo: s.coords.Info(),
	}}, nil
}
