package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample() *Graph {
	b := NewBuilder()
	b.Add(Edge{Source: 1, Target: 2, Type: ContainsElements, RelID: 100})
	b.Add(Edge{Source: 1, Target: 3, Type: ContainsElements, RelID: 101})
	b.Add(Edge{Source: 5, Target: 1, Type: Aggregates, RelID: 102})
	return b.Build()
}

func TestForwardEdges(t *testing.T) {
	g := buildSample()
	edges := g.Edges(1, nil, Forward)
	require.Len(t, edges, 2)
}

func TestCSRSymmetry(t *testing.T) {
	g := buildSample()
	fwd := g.Edges(1, nil, Forward)
	for _, e := range fwd {
		inv := g.Edges(e.Target, nil, Inverse)
		found := false
		for _, ie := range inv {
			if ie.Source == e.Source && ie.Type == e.Type && ie.RelID == e.RelID {
				found = true
			}
		}
		assert.True(t, found, "forward edge %+v missing from inverse", e)
	}
}

func TestGetRelatedFiltersByType(t *testing.T) {
	g := buildSample()
	related := g.GetRelated(1, ContainsElements, Forward)
	assert.ElementsMatch(t, []uint32{2, 3}, related)
}

func TestHasRelationship(t *testing.T) {
	g := buildSample()
	ct := ContainsElements
	assert.True(t, g.HasRelationship(1, 2, &ct))
	assert.False(t, g.HasRelationship(2, 1, &ct))
	assert.False(t, g.HasRelationship(1, 99, nil))
}

func TestEmptyGraphQueries(t *testing.T) {
	g := NewBuilder().Build()
	assert.Nil(t, g.Edges(1, nil, Forward))
	assert.False(t, g.HasRelationship(1, 2, nil))
}

func TestInverseOfAggregates(t *testing.T) {
	g := buildSample()
	parents := g.GetRelated(1, Aggregates, Inverse)
	assert.ElementsMatch(t, []uint32{5}, parents)
}
