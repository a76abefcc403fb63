package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/ifcmodel"
	"github.com/arx-os/ifclite/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Monitor a directory and load IFC files as they change",
	Long: `Watch a directory for created or modified .ifc files and parse each one
as it appears, writing (or refreshing) its bundle cache entry.

Examples:
  ifclite watch ./incoming`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if appConfig.Telemetry.Enabled {
		metricsServer := metrics.NewServer(appConfig.Telemetry.Addr, appMetrics)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error("metrics server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			metricsServer.Stop(shutdownCtx)
		}()
	}

	fmt.Printf("Watching %s for IFC files (ctrl-c to stop)...\n", dir)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("Stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error: %v", err)
		}
	}
}

func handleWatchEvent(ctx context.Context, event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".ifc") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	raw, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Warn("skipping %s: %v", event.Name, err)
		return
	}

	model, err := appLoader.Load(ctx, bytes.NewReader(raw))
	if err != nil {
		logger.Error("failed to load %s: %v", event.Name, err)
		return
	}

	if !model.FromCache {
		if err := model.WriteCache(ctx, appConfig, ifcmodel.HashSource(raw)); err != nil {
			logger.Warn("failed to write cache for %s: %v", event.Name, err)
		}
	}

	fmt.Printf("%s: %d entities loaded\n", event.Name, model.Entities.Len())
}
