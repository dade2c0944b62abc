// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/apops/apops/adapters/auth"
	"github.com/apops/apops/adapters/clock"
	"github.com/apops/apops/adapters/hasher"
	"github.com/apops/apops/adapters/idgen"
	"github.com/apops/apops/adapters/memory"
	"github.com/apops/apops/adapters/metrics"
	"github.com/apops/apops/adapters/sqlite"
	"github.com/apops/apops/app"
	"github.com/apops/apops/config"
	"github.com/apops/apops/ports"
	"github.com/apops/apops/web"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	DB         *sqlite.DB
	Store      ports.WorkspaceStore
	Service    *app.Service
	Metrics    *metrics.Collector
	HTTPServer *http.Server
}

// New loads configuration from the given path and wires the application.
// When the file does not exist it falls back to environment variables,
// which requires APOPS_AUTH_JWT_SECRET to be set.
func New(configPath string) (*App, error) {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if _, err := os.Stat(configPath); err == nil {
		holder, err := config.NewHolder(configPath, bootLogger)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return NewWithHolder(holder)
	}

	if !config.HasEnvConfig() {
		return nil, fmt.Errorf("config file %s not found and APOPS_AUTH_JWT_SECRET is not set", configPath)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return NewWithHolder(config.NewStaticHolder(cfg, bootLogger))
}

// NewWithHolder wires the application around an already-loaded config.
func NewWithHolder(holder *config.Holder) (*App, error) {
	cfg := holder.Get()
	logger := setupLogger(cfg)

	logger.Info().Msg("initializing apops")

	a := &App{
		Logger: logger,
		Config: holder,
	}

	if err := a.initStore(cfg); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	store := a.Store
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		store = metrics.InstrumentStore(store, a.Metrics)
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	a.Service = app.NewService(store, clock.Real{}, idgen.UUID{}, logger)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := web.NewHandler(web.Deps{
		Service: a.Service,
		Tokens:  tokens,
		Hasher:  hasher.NewBcrypt(0),
		Metrics: a.Metrics,
		Config:  cfg,
		Logger:  logger,
	})

	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

func (a *App) initStore(cfg *config.Config) error {
	switch cfg.Database.Driver {
	case "memory":
		a.Store = memory.NewWorkspaceStore()
		a.Logger.Info().Msg("using in-memory store, data will not survive restarts")
		return nil
	default:
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		a.DB = db
		a.Store = sqlite.NewWorkspaceStore(db)
		a.Logger.Info().Str("dsn", cfg.Database.DSN).Msg("database initialized")
		return nil
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	// Pick up config file edits; only reloadable fields take effect.
	if err := a.Config.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable")
	}
	a.Config.WatchSignals()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.Config.Stop()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
