package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanzikit/cjklex/internal/adapter/postgres"
	"github.com/hanzikit/cjklex/internal/adapter/postgres/lexicon"
	"github.com/hanzikit/cjklex/internal/config"
	"github.com/hanzikit/cjklex/internal/dict"
	"github.com/hanzikit/cjklex/internal/reading"
)

// App bundles the shared dependencies of the command-line entry points:
// configuration, logger, database pool, and the lexicon repository.
type App struct {
	Cfg     *config.Config
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Lexicon *lexicon.Repo
	Factory *reading.Factory
}

// Init loads configuration, initializes the logger, and connects to the
// database. The caller owns the returned App and must Close it.
func Init(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:     cfg,
		Log:     logger,
		Pool:    pool,
		Lexicon: lexicon.New(pool, postgres.NewTxManager(pool)),
		Factory: reading.NewFactory(),
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}

// Dictionary assembles a lookup dictionary for the named schema using the
// configured search options.
func (a *App) Dictionary(name string) (*dict.Dictionary, error) {
	schema, ok := dict.SchemaByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown dictionary %q", name)
	}

	return dict.New(schema, a.Lexicon, a.Factory, dict.Options{
		SingleWildcard:     a.Cfg.Search.SingleWildcard,
		MultipleWildcard:   a.Cfg.Search.MultipleWildcard,
		Escape:             a.Cfg.Search.Escape,
		CaseInsensitive:    a.Cfg.Search.CaseInsensitive,
		FullwidthFold:      a.Cfg.Search.FullwidthFolding,
		HeadwordPreference: dict.HeadwordPreference(a.Cfg.Search.HeadwordPreference),
		EnumerateTones:     a.Cfg.Search.EnumerateTones,
	}, a.Log)
}
