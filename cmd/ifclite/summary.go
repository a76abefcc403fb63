package main

import (
	"fmt"
	"sort"

	"github.com/arx-os/ifclite/internal/ifcmodel"
)

func printLoadSummary(model *ifcmodel.Model, verbose bool) {
	source := "parsed"
	if model.FromCache {
		source = "cache hit"
	}
	fmt.Printf("Model %s (%s)\n", model.ModelID, source)
	fmt.Printf("  Entities:   %d\n", model.Entities.Len())

	if spatial := model.Spatial; spatial != nil && spatial.Root != nil {
		fmt.Printf("  Spatial root: %s (express id %d)\n", spatial.Root.Type, spatial.Root.ExpressID)
	}

	if len(model.Errors) > 0 {
		fmt.Printf("  Errors:     %d (non-fatal)\n", len(model.Errors))
	}

	if verbose {
		printTypeCounts(model)
	}
}

func printTypeCounts(model *ifcmodel.Model) {
	counts := make(map[string]int)
	types := model.Entities.Types()
	for i := 0; i < model.Entities.Len(); i++ {
		row := model.Entities.Row(i)
		counts[types.NameOf(row.TypeEnum)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("  By type:")
	for _, name := range names {
		fmt.Printf("    %-32s %d\n", name, counts[name])
	}
}
