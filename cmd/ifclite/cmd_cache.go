package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arx-os/ifclite/internal/filecache"
	"github.com/arx-os/ifclite/internal/ifcmodel"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk bundle cache",
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect <input.ifc>",
	Short: "Print the cached bundle's contents for a source file, if present",
	Long: `Hash the given source file the same way a load would and check whether a
bundle cache entry exists for it, printing the entity/mesh counts from the
cached bundle if so.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheInspect,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached bundle under the configured cache directory",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInspectCmd, cacheClearCmd)
}

func runCacheInspect(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	hash := ifcmodel.HashSource(raw)
	path := filepath.Join(appConfig.CacheDir, fmt.Sprintf("%x.ifccache", hash))

	stats, ok, err := filecache.LoadStats(path, hash)
	if err != nil {
		return fmt.Errorf("failed to read cache entry: %w", err)
	}
	if !ok {
		fmt.Printf("No cache entry for %s (would be %s)\n", args[0], path)
		return nil
	}

	fmt.Printf("Cache entry: %s\n", path)
	fmt.Printf("  Entities:    %d\n", stats.Entities)
	fmt.Printf("  Properties:  %d\n", stats.Properties)
	fmt.Printf("  Quantities:  %d\n", stats.Quantities)
	fmt.Printf("  Meshes:      %d (deduplicated pool)\n", stats.Meshes)
	fmt.Printf("  Instances:   %d (dedup ratio %.2fx)\n", stats.Instances, stats.DedupRatio)
	fmt.Printf("  Build time:  %s\n", stats.BuildTime)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(appConfig.CacheDir)
	if os.IsNotExist(err) {
		fmt.Println("Cache directory does not exist, nothing to clear")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".ifccache" {
			continue
		}
		if err := os.Remove(filepath.Join(appConfig.CacheDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	fmt.Printf("Removed %d cache entries\n", removed)
	return nil
}
