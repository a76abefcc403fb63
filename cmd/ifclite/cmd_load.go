package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/ifcmodel"
	"github.com/spf13/cobra"
)

var loadVerbose bool

var loadCmd = &cobra.Command{
	Use:   "load <input.ifc>",
	Short: "Parse a STEP file and print a summary",
	Long: `Parse a STEP-encoded IFC file through the full tokenize/decode/build
pipeline (or short-circuit through the bundle cache on a repeat load) and
print a summary of the entities, properties, and spatial structure found.

Examples:
  ifclite load building.ifc
  ifclite load building.ifc --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadVerbose, "verbose", false, "Print per-type entity counts")
}

func runLoad(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}

	ctx := context.Background()
	model, err := appLoader.Load(ctx, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if !model.FromCache {
		if err := model.WriteCache(ctx, appConfig, ifcmodel.HashSource(raw)); err != nil {
			logger.Error("failed to write cache: %v", err)
		}
	}

	printLoadSummary(model, loadVerbose)
	return nil
}
