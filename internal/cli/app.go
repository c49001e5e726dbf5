package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/config"
	"github.com/paujie/brocode/internal/session"
	"github.com/paujie/brocode/internal/store"
)

// app bundles the wired runtime for one CLI invocation: config, the
// seeded in-memory store behind the service layer, the persisted token
// store and the session controller.
type app struct {
	cfg     config.Config
	api     *api.API
	tokens  *session.SQLiteTokenStore
	session *session.Controller
	log     *slog.Logger
}

// newApp loads the config, seeds a fresh store at the current time and
// opens the token database. The in-memory data restarts with every
// invocation; only the session token survives between runs.
func newApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	level := logLevel(cfg.LogLevel)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	st := store.New()
	store.Seed(st, time.Now())
	a := api.New(st,
		api.WithLatency(cfg.Latency.Std()),
		api.WithLogger(log),
	)

	if err := os.MkdirAll(filepath.Dir(cfg.TokenDB), 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create token store directory", err)
	}
	tokens, err := session.OpenTokenStore(cfg.TokenDB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open token store", err)
	}

	return &app{
		cfg:     cfg,
		api:     a,
		tokens:  tokens,
		session: session.New(a, tokens, log),
		log:     log,
	}, nil
}

// Close releases the token database.
func (a *app) Close() error {
	return a.tokens.Close()
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
