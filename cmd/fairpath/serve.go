package main

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/config"
	"github.com/jonathan/fairpath/internal/server"
)

type serveOptions struct {
	port         int
	watchCatalog bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server that exposes recommendation and career-switch endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on, overrides the configured port")
	cmd.Flags().BoolVar(&opts.watchCatalog, "watch-catalog", false, "Reload the catalog file when it changes")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.port > 0 {
		a.cfg.Port = opts.port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	if a.cfg.EagerLoad {
		if err := svc.Warm(ctx); err != nil {
			return fmt.Errorf("failed to load catalog at startup: %w", err)
		}
	}

	if opts.watchCatalog {
		if a.cfg.Catalog.Source != config.SourceFile {
			return fmt.Errorf("--watch-catalog requires catalog.source %q, got %q", config.SourceFile, a.cfg.Catalog.Source)
		}
		go watchCatalog(ctx, a, svc.Catalogs())
	}

	if a.cfg.IsProduction() && slices.Contains(a.cfg.CORSOrigins, "*") {
		a.log.Warn("wildcard CORS origin enabled in production")
	}

	a.log.Info("starting fairpath",
		zap.String("version", version),
		zap.String("env", a.cfg.EnvMode),
		zap.String("catalog_source", a.cfg.Catalog.Source),
		zap.Bool("eager_load", a.cfg.EagerLoad),
	)
	return server.New(a.cfg, svc, a.log.Named("http"), version).Start(ctx)
}

func watchCatalog(ctx context.Context, a *app, cache *catalog.Cache) {
	if err := catalog.Watch(ctx, a.cfg.Catalog.Path, cache, a.log.Named("watch")); err != nil {
		a.log.Error("catalog watcher stopped", zap.Error(err))
	}
}
