package ifcmodel

import (
	"context"
	"strings"
	"testing"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/config"
	"github.com/arx-os/ifclite/internal/metrics"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalStep = `ISO-10303-21;
HEADER;
ENDSEC;
DATA;
#1=IFCPROJECT('0project',$,'Project',$,$,$,$,$,$);
#2=IFCWALL('0wall',$,'Wall',$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;`

func testLoader(t *testing.T) *Loader {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Enabled = false
	return NewLoader(cfg, metrics.New(), logger.New(logger.ERROR))
}

func TestLoadMinimalFile(t *testing.T) {
	l := testLoader(t)
	model, err := l.Load(context.Background(), strings.NewReader(minimalStep))
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Equal(t, 2, model.Entities.Len())
	assert.False(t, model.FromCache)
	assert.NotNil(t, model.Stream)

	wallRow, ok := model.Entities.ByExpressID(2)
	require.True(t, ok)
	assert.Equal(t, "Wall", model.Strings.Get(wallRow.Name))
	assert.Zero(t, wallRow.Flags&store.HasGeometry)
}

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestLoadModelReservesFederationOffset(t *testing.T) {
	l := testLoader(t)
	modelID := mustUUID(t)
	_, err := l.LoadModel(context.Background(), modelID, strings.NewReader(minimalStep))
	require.NoError(t, err)

	entry, ok := l.Federation().EntryFor(modelID)
	require.True(t, ok)
	assert.Equal(t, uint32(0), entry.Offset)
	assert.Equal(t, uint32(2), entry.MaxExpressID)

	other, err := l.Load(context.Background(), strings.NewReader(minimalStep))
	require.NoError(t, err)
	otherEntry, ok := l.Federation().EntryFor(other.ModelID)
	require.True(t, ok)
	assert.Equal(t, uint32(3), otherEntry.Offset)
}

func TestEngineBuildsOverModel(t *testing.T) {
	l := testLoader(t)
	model, err := l.Load(context.Background(), strings.NewReader(minimalStep))
	require.NoError(t, err)

	e := model.Engine()
	require.NotNil(t, e)
	rows := e.ByType("IFCWALL")
	require.Len(t, rows, 1)
}
