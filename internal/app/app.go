// Package app builds the ledger, its documents and their backing services
// from configuration. The api, cli and tui binaries share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/document"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
)

type App struct {
	Config    *config.Config
	Metrics   *metrics.Metrics
	Ledger    *ledger.Service
	Documents *document.Service
	Markdown  *document.Markdown
	Importer  *importer.Service
	Layout    document.Layout

	closers []func() error
}

// New opens the configured store, loads the ledger and connects the
// document cache. Close releases whatever New opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	layout, err := document.ParseLayout(cfg.Document.Layout)
	if err != nil {
		return nil, fmt.Errorf("DOCUMENT_LAYOUT: %w", err)
	}

	md, err := document.NewMarkdown(cfg.App.Currency)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	a := &App{
		Config:   cfg,
		Metrics:  metrics.New(),
		Markdown: md,
		Importer: importer.NewService(),
		Layout:   layout,
	}

	repo, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Ledger = ledger.NewService(repo, ledger.WithObserver(a.Metrics))
	if err := a.Ledger.Load(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	a.Documents = document.NewService(a.Ledger, document.NewPDF(cfg.App.Currency, cfg.App.Name),
		document.WithRecorder(a.Metrics),
		document.WithCache(a.openCache(ctx), cfg.Redis.TTL),
	)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (ledger.Repository, error) {
	cfg := a.Config

	switch cfg.Store.Driver {
	case "sqlite":
		db, err := database.New(ctx, database.DriverSQLite, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}

		a.closers = append(a.closers, db.Close)

		s := store.NewSQLite(db)

		return s, s.Migrate(ctx)
	case "postgres":
		db, err := database.New(ctx, database.DriverPostgres, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}

		a.closers = append(a.closers, db.Close)

		s := store.NewPostgres(db)

		return s, s.Migrate(ctx)
	default:
		return store.NewFile(cfg.Store.DataFile), nil
	}
}

// openCache connects to Redis when REDIS_ADDR is set. An unreachable server
// only costs the cache, documents are still rendered.
func (a *App) openCache(ctx context.Context) cache.DocumentCache {
	cfg := a.Config
	if cfg.Redis.Addr == "" {
		return cache.Noop{}
	}

	c := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Ping(ctx); err != nil {
		slog.Warn("document cache disabled", "addr", cfg.Redis.Addr, "error", err)
		_ = c.Close()

		return cache.Noop{}
	}

	a.closers = append(a.closers, c.Close)

	return c
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
