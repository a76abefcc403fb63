package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.StateDir)
	assert.NotEmpty(t, cfg.CacheDir)

	assert.Equal(t, 24, cfg.Geometry.CircleSegments)
	assert.True(t, cfg.Geometry.CSGCleanupEnabled)

	assert.Equal(t, 256, cfg.Batch.ColorUpdateBatchSize)
	assert.Equal(t, 3, cfg.Batch.PriorityTiers)

	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yml")

	content := `
state_dir: /test/state
cache_dir: /test/cache
geometry:
  circle_segments: 48
  csg_cleanup_enabled: false
batch:
  color_update_batch_size: 512
  priority_tiers: 2
cache:
  enabled: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFromFile(configPath))

	assert.Equal(t, "/test/state", cfg.StateDir)
	assert.Equal(t, "/test/cache", cfg.CacheDir)
	assert.Equal(t, 48, cfg.Geometry.CircleSegments)
	assert.False(t, cfg.Geometry.CSGCleanupEnabled)
	assert.Equal(t, 512, cfg.Batch.ColorUpdateBatchSize)
	assert.Equal(t, 2, cfg.Batch.PriorityTiers)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromFileSubstitutesEnvVars(t *testing.T) {
	t.Setenv("TEST_IFCLITE_CACHE_DIR", "/env/cache")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yml")
	content := "cache_dir: ${TEST_IFCLITE_CACHE_DIR}\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFromFile(configPath))
	assert.Equal(t, "/env/cache", cfg.CacheDir)
}

func TestLoadFromFileSubstitutesEnvVarDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yml")
	content := "cache_dir: ${TEST_IFCLITE_UNSET_VAR:-/default/cache}\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFromFile(configPath))
	assert.Equal(t, "/default/cache", cfg.CacheDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IFCLITE_CIRCLE_SEGMENTS", "64")
	t.Setenv("IFCLITE_CSG_CLEANUP", "false")
	t.Setenv("IFCLITE_CACHE_ENABLED", "false")

	cfg := Default()
	cfg.LoadFromEnv()

	assert.Equal(t, 64, cfg.Geometry.CircleSegments)
	assert.False(t, cfg.Geometry.CSGCleanupEnabled)
	assert.False(t, cfg.Cache.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Geometry.CircleSegments = 2
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Batch.ColorUpdateBatchSize = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Coordinate.MaxCoordinateThreshold = cfg.Coordinate.LargeCoordinateThreshold
	assert.Error(t, cfg.Validate())
}

func TestEnsureDirectoriesCreatesPaths(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Default()
	cfg.StateDir = filepath.Join(tmpDir, "state")
	cfg.CacheDir = filepath.Join(tmpDir, "cache")

	require.NoError(t, cfg.EnsureDirectories())

	_, err := os.Stat(cfg.StateDir)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.CacheDir)
	assert.NoError(t, err)
}

func TestSaveRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.yml")

	cfg := Default()
	cfg.Geometry.CircleSegments = 32
	require.NoError(t, cfg.Save(path))

	loaded := Default()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 32, loaded.Geometry.CircleSegments)
}
