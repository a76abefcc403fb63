package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/arx-os/ifclite/internal/export"
	"github.com/arx-os/ifclite/internal/filecache"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/ifcmodel"
	"github.com/arx-os/ifclite/internal/stream"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <input.ifc> <output>",
	Short: "Convert a parsed model to CSV, Parquet, or glTF",
	Long: `Parse a STEP file and write its entity table (CSV or Parquet) or its
tessellated geometry (glTF) to output. Property and quantity tables are not
exported by this command.

Supported formats: csv, parquet, gltf

Examples:
  ifclite export building.ifc building.csv --format csv
  ifclite export building.ifc building.parquet --format parquet
  ifclite export building.ifc building.gltf --format gltf`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format (csv, parquet, gltf)")
}

func runExport(cmd *cobra.Command, args []string) error {
	inputFile, outputFile := args[0], args[1]

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}

	ctx := context.Background()
	model, err := appLoader.Load(ctx, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	switch exportFormat {
	case "csv":
		w := export.NewCSVWriter()
		if err := w.WriteEntities(out, model.Entities, model.Strings); err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
	case "parquet":
		w := export.NewParquetWriter()
		if err := w.WriteEntities(out, model.Entities, model.Strings); err != nil {
			return fmt.Errorf("parquet export failed: %w", err)
		}
	case "gltf":
		meshes, instances, err := meshesFor(ctx, model)
		if err != nil {
			return err
		}
		elements := make([]export.Element, 0, len(instances))
		for _, inst := range instances {
			elements = append(elements, export.Element{ExpressID: inst.ExpressID, Mesh: meshes[inst.MeshIndex]})
		}
		w := export.NewGLTFWriter()
		if err := w.Write(out, elements); err != nil {
			return fmt.Errorf("gltf export failed: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s\n\nSupported formats: csv, parquet, gltf", exportFormat)
	}

	fmt.Printf("Exported to %s\n", outputFile)
	return nil
}

// meshesFor returns the model's pooled meshes and per-element instances,
// draining the mesh stream to completion if this was a fresh parse.
func meshesFor(ctx context.Context, model *ifcmodel.Model) ([]geometry.Mesh, []filecache.Instance, error) {
	if model.FromCache {
		return model.CachedMeshes, model.CachedInstances, nil
	}

	pool := filecache.NewMeshPool()
	var instances []filecache.Instance
	for {
		ev, err := model.Stream.Next(ctx)
		if err != nil {
			if err == stream.ErrSessionDone {
				break
			}
			return nil, nil, fmt.Errorf("mesh stream failed: %w", err)
		}
		if ev.Kind != stream.KindBatch {
			continue
		}
		for _, em := range ev.Batch.Meshes {
			idx := pool.Add(em.Mesh)
			instances = append(instances, filecache.Instance{
				MeshIndex: idx,
				Transform: filecache.IdentityTransform,
				Color:     em.Color,
				ExpressID: em.ExpressID,
			})
		}
	}
	return pool.Meshes(), instances, nil
}
