package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/prompt-library/internal/config"
	"github.com/joestump/prompt-library/internal/db"
	"github.com/joestump/prompt-library/internal/prompt"
	"github.com/joestump/prompt-library/internal/render"
	"github.com/joestump/prompt-library/internal/store"
)

// appEnv bundles what the subcommands share once config is loaded.
type appEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sqlx.DB
	// presets is nil when no database is configured.
	presets *store.PresetStore
}

// loadEnv loads config and the logger, and opens and migrates the preset
// database when one is configured. requireDB turns a missing database into
// an error.
func loadEnv(ctx context.Context, opts *rootOptions, requireDB bool) (*appEnv, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	env := &appEnv{cfg: cfg, logger: config.NewLogger(os.Stderr, cfg)}

	if !cfg.PresetsEnabled() {
		if requireDB {
			return nil, fmt.Errorf("PROMPTLIB_DB_DRIVER and PROMPTLIB_DB_DSN are required for presets")
		}
		return env, nil
	}

	conn, err := db.New(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn, cfg.DB.Driver, env.logger); err != nil {
		_ = conn.Close()
		return nil, err
	}
	env.db = conn
	env.presets = store.NewPresetStore(conn)
	return env, nil
}

func (e *appEnv) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

// presetGetter avoids handing a typed nil *PresetStore to code that checks
// the interface for nil.
func (e *appEnv) presetGetter() render.PresetGetter {
	if e.presets == nil {
		return nil
	}
	return e.presets
}

func (e *appEnv) presetStore() store.PresetStoreIface {
	if e.presets == nil {
		return nil
	}
	return e.presets
}

func (e *appEnv) renderer() *render.Service {
	return render.NewService(prompt.Default(), e.presetGetter(), e.cfg.PromptOptions(), e.cfg.Prompt.Default, e.logger)
}
