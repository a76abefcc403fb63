// Package graph implements the bidirectional relationship graph (C6): a
// two-pass build from IfcRel* entities into a CSR representation answering
// forward and inverse neighborhood queries.
package graph

import "sort"

// RelType is the fixed relationship-kind enumeration (spec §3).
type RelType uint8

const (
	ContainsElements RelType = iota
	Aggregates
	DefinesByProperties
	DefinesByType
	AssociatesMaterial
	AssociatesClassification
	VoidsElement
	FillsElement
	ConnectsPathElements
	ConnectsElements
	SpaceBoundary
	AssignsToGroup
	AssignsToProduct
	ReferencedInSpatialStructure
)

// Edge is one relationship instance before CSR compaction.
type Edge struct {
	Source, Target uint32
	Type           RelType
	RelID          uint32
}

// Direction selects which CSR side a query traverses.
type Direction int

const (
	Forward Direction = iota
	Inverse
)

// Builder accumulates edges from a scan of IfcRel* entities.
type Builder struct {
	edges []Edge
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Add(e Edge) { b.edges = append(b.edges, e) }

// csrSide holds one direction's compacted arrays.
type csrSide struct {
	offsets map[uint32]int
	counts  map[uint32]int
	keys    []uint32 // the endpoint this side is keyed by, sorted
	ends    []uint32 // the other endpoint, parallel to keys
	types   []RelType
	relIDs  []uint32
}

// Graph is the immutable, built bidirectional CSR graph.
type Graph struct {
	fwd, inv csrSide
}

func (b *Builder) Build() *Graph {
	fwdEdges := make([]Edge, len(b.edges))
	copy(fwdEdges, b.edges)
	sort.Slice(fwdEdges, func(i, j int) bool {
		if fwdEdges[i].Source != fwdEdges[j].Source {
			return fwdEdges[i].Source < fwdEdges[j].Source
		}
		return fwdEdges[i].Target < fwdEdges[j].Target
	})

	invEdges := make([]Edge, len(b.edges))
	copy(invEdges, b.edges)
	sort.Slice(invEdges, func(i, j int) bool {
		if invEdges[i].Target != invEdges[j].Target {
			return invEdges[i].Target < invEdges[j].Target
		}
		return invEdges[i].Source < invEdges[j].Source
	})

	return &Graph{
		fwd: compact(fwdEdges, true),
		inv: compact(invEdges, false),
	}
}

func compact(edges []Edge, forward bool) csrSide {
	side := csrSide{
		offsets: make(map[uint32]int),
		counts:  make(map[uint32]int),
		keys:    make([]uint32, len(edges)),
		ends:    make([]uint32, len(edges)),
		types:   make([]RelType, len(edges)),
		relIDs:  make([]uint32, len(edges)),
	}
	for i, e := range edges {
		var key, end uint32
		if forward {
			key, end = e.Source, e.Target
		} else {
			key, end = e.Target, e.Source
		}
		side.keys[i] = key
		side.ends[i] = end
		side.types[i] = e.Type
		side.relIDs[i] = e.RelID
		if _, ok := side.offsets[key]; !ok {
			side.offsets[key] = i
		}
		side.counts[key]++
	}
	return side
}

// Edges returns a new slice of id's edges on the side chosen by dir,
// optionally filtered by relType (pass nil for all types).
func (g *Graph) Edges(id uint32, relType *RelType, dir Direction) []Edge {
	side := g.side(dir)
	off, ok := side.offsets[id]
	if !ok {
		return nil
	}
	count := side.counts[id]
	var out []Edge
	for i := off; i < off+count; i++ {
		if relType != nil && side.types[i] != *relType {
			continue
		}
		src, dst := id, side.ends[i]
		if dir == Inverse {
			src, dst = side.ends[i], id
		}
		out = append(out, Edge{Source: src, Target: dst, Type: side.types[i], RelID: side.relIDs[i]})
	}
	return out
}

// GetRelated returns just the neighbor express ids for id under relType and
// direction.
func (g *Graph) GetRelated(id uint32, relType RelType, dir Direction) []uint32 {
	side := g.side(dir)
	off, ok := side.offsets[id]
	if !ok {
		return nil
	}
	count := side.counts[id]
	var out []uint32
	for i := off; i < off+count; i++ {
		if side.types[i] == relType {
			out = append(out, side.ends[i])
		}
	}
	return out
}

// HasRelationship reports whether a forward edge src->dst exists,
// optionally filtered by relType, short-circuiting on the forward slice.
func (g *Graph) HasRelationship(src, dst uint32, relType *RelType) bool {
	off, ok := g.fwd.offsets[src]
	if !ok {
		return false
	}
	count := g.fwd.counts[src]
	for i := off; i < off+count; i++ {
		if g.fwd.ends[i] != dst {
			continue
		}
		if relType == nil || g.fwd.types[i] == *relType {
			return true
		}
	}
	return false
}

func (g *Graph) side(dir Direction) csrSide {
	if dir == Forward {
		return g.fwd
	}
	return g.inv
}

// EdgeCount returns the total number of stored edges (same for both sides).
func (g *Graph) EdgeCount() int { return len(g.fwd.keys) }

// AllEdges reconstructs the original (pre-CSR) edge list from the forward
// side, for callers that need to persist or replay the whole graph (the
// on-disk cache rebuilds both CSR sides from this via Builder.Build).
func (g *Graph) AllEdges() []Edge {
	edges := make([]Edge, len(g.fwd.keys))
	for i := range g.fwd.keys {
		edges[i] = Edge{
			Source: g.fwd.keys[i],
			Target: g.fwd.ends[i],
			Type:   g.fwd.types[i],
			RelID:  g.fwd.relIDs[i],
		}
	}
	return edges
}
