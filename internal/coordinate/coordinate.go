// Package coordinate implements the large-coordinate handler (C10):
// incremental accumulation of a mesh stream's world-space bounds, with a
// one-time origin shift frozen once the accumulated extent crosses a
// "georeferenced file" threshold.
package coordinate

import (
	"math"

	"github.com/arx-os/ifclite/internal/geomath"
)

// TLarge is the axis-extent / centroid-distance threshold (meters) above
// which a file is treated as georeferenced and gets an origin shift.
// Overridable via SetThresholds.
var TLarge = 10_000.0

// TMax is the sanity bound (meters): any vertex component beyond this is
// dropped rather than accumulated, and is replaced with the origin once a
// shift is frozen. Overridable via SetThresholds.
var TMax = 10_000_000.0

// SetThresholds overrides TLarge/TMax. Non-positive values leave the
// corresponding threshold unchanged.
func SetThresholds(large, max float64) {
	if large > 0 {
		TLarge = large
	}
	if max > 0 {
		TMax = max
	}
}

// Reasonable reports whether v is finite and within the sanity bound.
func Reasonable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < TMax
}

// Info is the handler's output after some number of accept calls.
type Info struct {
	OriginShift     geomath.Vec3
	OriginalBounds  geomath.AABB
	ShiftedBounds   geomath.AABB
	IsGeoReferenced bool
}

// Handler accumulates bounds across batches and freezes an origin shift the
// first time the accumulated extent looks georeferenced.
type Handler struct {
	bounds        geomath.AABB
	originShift   geomath.Vec3
	shiftFrozen   bool
	droppedVertex int
}

func New() *Handler {
	return &Handler{bounds: geomath.EmptyAABB()}
}

// Accept scans every position in positions, folding reasonable vertices
// into the accumulated bounds and counting the rest as dropped. Once the
// accumulated bounds (after this batch) look georeferenced, the origin
// shift is computed and frozen exactly once.
func (h *Handler) Accept(positions []geomath.Vec3) {
	for _, v := range positions {
		if reasonableVec3(v) {
			h.bounds = h.bounds.Expand(v)
		} else {
			h.droppedVertex++
		}
	}
	if !h.shiftFrozen && !h.bounds.IsEmpty() {
		center := h.bounds.Center()
		if h.bounds.MaxAxisExtent() > TLarge || center.Length() > TLarge {
			h.originShift = center
			h.shiftFrozen = true
		}
	}
}

// Shift applies the frozen origin shift (if any) to positions in place,
// replacing any unreasonable vertex with the origin. It is the per-position
// transform the geometry/stream pipeline calls after the shift has been
// decided, so positions emitted before the shift froze are not silently
// left unshifted.
func (h *Handler) Shift(positions []geomath.Vec3) {
	for i, v := range positions {
		if reasonableVec3(v) {
			positions[i] = v.Sub(h.originShift)
		} else {
			positions[i] = geomath.Vec3{}
		}
	}
}

// ToWorld undoes the origin shift.
func (h *Handler) ToWorld(v geomath.Vec3) geomath.Vec3 { return v.Add(h.originShift) }

// ToLocal applies the origin shift.
func (h *Handler) ToLocal(v geomath.Vec3) geomath.Vec3 { return v.Sub(h.originShift) }

// DroppedVertexCount returns the number of vertices rejected as unreasonable
// across every Accept call so far.
func (h *Handler) DroppedVertexCount() int { return h.droppedVertex }

// Info snapshots the handler's current state.
func (h *Handler) Info() Info {
	return Info{
		OriginShift:     h.originShift,
		OriginalBounds:  h.bounds,
		ShiftedBounds:   h.bounds.Sub(h.originShift),
		IsGeoReferenced: h.originShift != (geomath.Vec3{}),
	}
}

func reasonableVec3(v geomath.Vec3) bool {
	return Reasonable(v.X) && Reasonable(v.Y) && Reasonable(v.Z)
}
