// Command ifclite parses STEP-encoded IFC files into a queryable entity
// store, relationship graph, and tessellated mesh stream, with an on-disk
// bundle cache so repeat loads skip re-parsing entirely.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/arx-os/ifclite/internal/config"
	"github.com/arx-os/ifclite/internal/ifcmodel"
	"github.com/arx-os/ifclite/internal/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version information (set during build)
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"

	appConfig  *config.Config
	appMetrics *metrics.Metrics
	appLoader  *ifcmodel.Loader

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "ifclite",
	Short: "ifclite - an IFC STEP file processing engine",
	Long: `ifclite ingests STEP-encoded IFC building models and produces a
queryable entity store, a spatial/relationship graph, and a tessellated
geometry stream.

Core features:
  • load    - Parse a STEP file and print a summary of what it contains
  • export  - Convert a parsed model to CSV, Parquet, or glTF
  • cache   - Inspect or clear the on-disk bundle cache
  • watch   - Monitor a directory and load IFC files as they change

For detailed help on any command, use: ifclite <command> --help`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML)")

	logLevel := os.Getenv("IFCLITE_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	log := logger.New(parseLogLevel(logLevel))

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	appConfig = cfg
	appMetrics = metrics.New()
	appLoader = ifcmodel.NewLoader(appConfig, appMetrics, log)

	rootCmd.AddCommand(
		loadCmd,
		exportCmd,
		cacheCmd,
		watchCmd,
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG
	case "warn", "warning":
		return logger.WARN
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ifclite %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", Commit)
	},
}
