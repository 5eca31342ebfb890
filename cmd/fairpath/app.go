package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/config"
	"github.com/jonathan/fairpath/internal/db"
	"github.com/jonathan/fairpath/internal/logger"
	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/recommend"
)

// app carries the resolved configuration and the resources a command opened
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	closers []func()
}

// newApp loads configuration, applies flag overrides and builds the logger.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.debug":    "debug",
		"log.json":     "json-logs",
		"catalog.path": "catalog",
		"model.path":   "model",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	a.closers = append(a.closers, func() { _ = log.Sync() })
	return a, nil
}

// Close releases everything the app opened, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// provider opens the configured catalog source.
func (a *app) provider(ctx context.Context) (catalog.Provider, error) {
	switch a.cfg.Catalog.Source {
	case config.SourcePostgres:
		conn, err := db.Connect(ctx, a.cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return catalog.NewPostgresProvider(conn), nil
	case config.SourceSQLite:
		store, err := catalog.OpenSQLite(a.cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = store.Close() })
		return store, nil
	default:
		return catalog.NewFileProvider(a.cfg.Catalog.Path), nil
	}
}

// loadCatalog reads and validates the configured catalog once.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	p, err := a.provider(ctx)
	if err != nil {
		return nil, err
	}
	c, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// service builds the recommendation facade over the configured catalog and model.
func (a *app) service(ctx context.Context) (*recommend.Service, error) {
	p, err := a.provider(ctx)
	if err != nil {
		return nil, err
	}
	cache := catalog.NewCache(p, a.log.Named("catalog"))
	return recommend.New(cache, model.NewFileStore(a.cfg.Model.Path), recommend.Options{
		Thresholds: a.cfg.Ranking,
		Logger:     a.log,
	}), nil
}
