package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/db"
	"github.com/jonathan/fairpath/internal/observability"
)

func newValidateCatalogCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate-catalog",
		Short: "Load and validate the configured catalog",
		Long:  "Loads the catalog from its configured source, checks every occupation's vector dimensions and prints a summary.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, c.Summary())
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintCatalogSummary(c.Summary())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

type importOptions struct {
	sqlitePath  string
	databaseURL string
}

func newImportCatalogCmd(root *rootOptions) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import-catalog",
		Short: "Copy the configured catalog into SQLite or PostgreSQL",
		Long:  "Loads and validates the configured catalog, then replaces the catalog tables of the target database with it in one transaction.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImportCatalog(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite", "", "Target SQLite database file")
	cmd.Flags().StringVar(&opts.databaseURL, "postgres", "", "Target PostgreSQL connection URL")
	cmd.MarkFlagsMutuallyExclusive("sqlite", "postgres")
	cmd.MarkFlagsOneRequired("sqlite", "postgres")
	return cmd
}

func runImportCatalog(cmd *cobra.Command, root *rootOptions, opts *importOptions) error {
	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	c, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	target := opts.sqlitePath
	if opts.sqlitePath != "" {
		store, err := catalog.OpenSQLite(opts.sqlitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(ctx, c); err != nil {
			return err
		}
	} else {
		target = "postgres"
		conn, err := db.Connect(ctx, opts.databaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := conn.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := conn.ReplaceCatalog(ctx, c.Version, c.SkillNames, c.Occupations); err != nil {
			return err
		}
	}

	a.log.Info("catalog imported", zap.String("target", target), zap.Int("occupations", c.Len()))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d occupations (%s) into %s\n", c.Len(), c.Version, target)
	return nil
}
