// Package config provides configuration management for the ifclite
// processing pipeline: loading, defaulting, and environment overrides for
// tessellation quality, batch sizing, cache location, and coordinate
// handling.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete ifclite runtime configuration.
type Config struct {
	// StateDir is the base directory for ifclite's own state (config,
	// logs). CacheDir holds the binary bundle cache (C12).
	StateDir string `json:"state_dir" yaml:"state_dir"`
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	Geometry   GeometryConfig   `json:"geometry" yaml:"geometry"`
	Batch      BatchConfig      `json:"batch" yaml:"batch"`
	Coordinate CoordinateConfig `json:"coordinate" yaml:"coordinate"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Telemetry  TelemetryConfig  `json:"telemetry" yaml:"telemetry"`
}

// GeometryConfig controls tessellation quality and boolean-clip behavior
// (spec §9).
type GeometryConfig struct {
	// CircleSegments is the number of line segments used to approximate a
	// full circle when tessellating curved profiles.
	CircleSegments int `json:"circle_segments" yaml:"circle_segments"`
	// CSGCleanupEnabled toggles degenerate-triangle removal after boolean
	// clipping (IfcRelVoidsElement openings).
	CSGCleanupEnabled bool `json:"csg_cleanup_enabled" yaml:"csg_cleanup_enabled"`
	// DegenerateEpsilon is the minimum triangle area kept after cleanup.
	DegenerateEpsilon float64 `json:"degenerate_epsilon" yaml:"degenerate_epsilon"`
}

// BatchConfig controls the streaming pull API's batching behavior (C11).
type BatchConfig struct {
	// ColorUpdateBatchSize is loaded and validated (must be positive); the
	// stream session does not read it.
	ColorUpdateBatchSize int `json:"color_update_batch_size" yaml:"color_update_batch_size"`
	// PriorityTiers is loaded and validated (must be positive); the stream
	// session uses its own fixed priority table and does not read it.
	PriorityTiers int `json:"priority_tiers" yaml:"priority_tiers"`
}

// CoordinateConfig controls large-coordinate detection and shifting (C10).
type CoordinateConfig struct {
	// LargeCoordinateThreshold is the magnitude above which a vertex is
	// considered "large" and eligible for origin-shifting.
	LargeCoordinateThreshold float64 `json:"large_coordinate_threshold" yaml:"large_coordinate_threshold"`
	// MaxCoordinateThreshold is the magnitude above which a vertex is
	// dropped outright as unrepresentable.
	MaxCoordinateThreshold float64 `json:"max_coordinate_threshold" yaml:"max_coordinate_threshold"`
}

// CacheConfig controls the on-disk binary bundle cache (C12).
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// TTL is loaded from file/env as a string; no cache code reads it, and
	// cached bundles do not expire.
	TTL string `json:"ttl" yaml:"ttl"`
	// MaxFileSizeBytes is loaded from file/env; the loader does not read
	// it, so source files of any size are loaded.
	MaxFileSizeBytes int64 `json:"max_file_size_bytes" yaml:"max_file_size_bytes"`
}

// TelemetryConfig controls whether load/decode metrics are exported.
type TelemetryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		StateDir: filepath.Join(homeDir, ".ifclite"),
		CacheDir: filepath.Join(homeDir, ".ifclite", "cache"),

		Geometry: GeometryConfig{
			CircleSegments:    24,
			CSGCleanupEnabled: true,
			DegenerateEpsilon: 1e-9,
		},

		Batch: BatchConfig{
			ColorUpdateBatchSize: 256,
			PriorityTiers:        3,
		},

		Coordinate: CoordinateConfig{
			LargeCoordinateThreshold: 10_000,
			MaxCoordinateThreshold:   10_000_000,
		},

		Cache: CacheConfig{
			Enabled:          true,
			TTL:              "0",
			MaxFileSizeBytes: 0,
		},

		Telemetry: TelemetryConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load loads configuration from file, then applies environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			fmt.Printf("Warning: failed to load config file, using defaults: %v\n", err)
		}
	}

	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file, substituting
// ${VAR} / ${VAR:-default} environment references before parsing.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(substituteEnvVars(string(data)))

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// LoadFromEnv applies IFCLITE_-prefixed environment variable overrides.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("IFCLITE_STATE_DIR"); dir != "" {
		c.StateDir = dir
	}
	if dir := os.Getenv("IFCLITE_CACHE_DIR"); dir != "" {
		c.CacheDir = dir
	}

	if segs := os.Getenv("IFCLITE_CIRCLE_SEGMENTS"); segs != "" {
		if v, err := strconv.Atoi(segs); err == nil {
			c.Geometry.CircleSegments = v
		}
	}
	if enabled := os.Getenv("IFCLITE_CSG_CLEANUP"); enabled == "true" || enabled == "false" {
		c.Geometry.CSGCleanupEnabled = enabled == "true"
	}

	if size := os.Getenv("IFCLITE_COLOR_BATCH_SIZE"); size != "" {
		if v, err := strconv.Atoi(size); err == nil {
			c.Batch.ColorUpdateBatchSize = v
		}
	}

	if threshold := os.Getenv("IFCLITE_LARGE_COORD_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 64); err == nil {
			c.Coordinate.LargeCoordinateThreshold = v
		}
	}

	if enabled := os.Getenv("IFCLITE_CACHE_ENABLED"); enabled == "true" || enabled == "false" {
		c.Cache.Enabled = enabled == "true"
	}
	if ttl := os.Getenv("IFCLITE_CACHE_TTL"); ttl != "" {
		c.Cache.TTL = ttl
	}
	if size := os.Getenv("IFCLITE_MAX_FILE_SIZE"); size != "" {
		if v, err := strconv.ParseInt(size, 10, 64); err == nil {
			c.Cache.MaxFileSizeBytes = v
		}
	}

	if enabled := os.Getenv("IFCLITE_TELEMETRY_ENABLED"); enabled == "true" || enabled == "false" {
		c.Telemetry.Enabled = enabled == "true"
	}
	if addr := os.Getenv("IFCLITE_TELEMETRY_ADDR"); addr != "" {
		c.Telemetry.Addr = addr
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Geometry.CircleSegments < 3 {
		return fmt.Errorf("geometry.circle_segments must be at least 3, got %d", c.Geometry.CircleSegments)
	}
	if c.Geometry.DegenerateEpsilon < 0 {
		return fmt.Errorf("geometry.degenerate_epsilon must not be negative")
	}
	if c.Batch.ColorUpdateBatchSize <= 0 {
		return fmt.Errorf("batch.color_update_batch_size must be positive")
	}
	if c.Batch.PriorityTiers <= 0 {
		return fmt.Errorf("batch.priority_tiers must be positive")
	}
	if c.Coordinate.LargeCoordinateThreshold <= 0 {
		return fmt.Errorf("coordinate.large_coordinate_threshold must be positive")
	}
	if c.Coordinate.MaxCoordinateThreshold <= c.Coordinate.LargeCoordinateThreshold {
		return fmt.Errorf("coordinate.max_coordinate_threshold must exceed large_coordinate_threshold")
	}
	return nil
}

// EnsureDirectories creates the state and cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.StateDir, c.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Save writes the configuration back out as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() string {
	if path := os.Getenv("IFCLITE_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("ifclite.yml"); err == nil {
		return "ifclite.yml"
	}
	if _, err := os.Stat("ifclite.yaml"); err == nil {
		return "ifclite.yaml"
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ifclite", "config.yml")
}

// substituteEnvVars replaces ${VAR} and ${VAR:-default} references in
// configuration file content.
func substituteEnvVars(content string) string {
	pattern := regexp.MustCompile(`\$\{([^}:]+)(?::-(.*?))?\}`)

	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		start := strings.Index(match, "${") + 2
		end := strings.Index(match, "}")
		if end == -1 {
			return match
		}

		varPart := match[start:end]
		var varName, defaultValue string
		if colonIndex := strings.Index(varPart, ":-"); colonIndex != -1 {
			varName = varPart[:colonIndex]
			defaultValue = varPart[colonIndex+2:]
		} else {
			varName = varPart
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
