package ifcmodel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFederationTableReservesNonOverlappingWindows(t *testing.T) {
	f := NewFederationTable()
	a := uuid.New()
	b := uuid.New()

	entryA := f.Reserve(a, 100)
	assert.Equal(t, uint32(0), entryA.Offset)

	entryB := f.Reserve(b, 50)
	assert.Equal(t, uint32(101), entryB.Offset)

	got, ok := f.EntryFor(a)
	require.True(t, ok)
	assert.Equal(t, entryA, got)

	_, ok = f.EntryFor(uuid.New())
	assert.False(t, ok)

	assert.Len(t, f.Entries(), 2)
}
