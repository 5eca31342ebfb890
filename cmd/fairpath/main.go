// Package main provides the fairpath CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath  string
	catalogPath string
	modelPath   string
	debug       bool
	jsonLogs    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fairpath",
		Short:         "Occupation recommendations and career-switch analysis",
		Long:          "FairPath ranks occupations against a skills, interests and work-values profile and analyzes the effort of switching between careers. It runs as a CLI or as a REST API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON, YAML or TOML config file")
	flags.StringVar(&opts.catalogPath, "catalog", "", "Catalog path, overrides catalog.path")
	flags.StringVar(&opts.modelPath, "model", "", "Model artifact path, overrides model.path")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Write logs as JSON")

	cmd.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
		newSwitchCmd(opts),
		newTrainCmd(opts),
		newValidateCatalogCmd(opts),
		newImportCatalogCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
