package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/apops/apops/adapters/clock"
	"github.com/apops/apops/adapters/idgen"
	"github.com/apops/apops/adapters/memory"
	"github.com/apops/apops/adapters/sqlite"
	"github.com/apops/apops/app"
	"github.com/apops/apops/config"
	"github.com/apops/apops/ports"
)

// openService builds a service over the configured store for one-shot
// CLI commands. The returned func releases the database.
func openService(level zerolog.Level) (*app.Service, *config.Config, func(), error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	var store ports.WorkspaceStore
	cleanup := func() {}
	if cfg.Database.Driver == "memory" {
		store = memory.NewWorkspaceStore()
	} else {
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		store = sqlite.NewWorkspaceStore(db)
		cleanup = func() { db.Close() }
	}

	svc := app.NewService(store, clock.Real{}, idgen.UUID{}, logger)
	return svc, cfg, cleanup, nil
}
