// Package app wires configuration, storage, settings and the scoreboard into
// the pieces every front end needs.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mageise/gtd-any/input"
	"github.com/mageise/gtd-any/internal/config"
	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/runner"
	"github.com/mageise/gtd-any/scoreboard"
)

// App holds the long-lived dependencies of a front end.
type App struct {
	Config   config.Config
	Settings config.Settings
	Keymap   input.Keymap
	Store    kv.Store
	Book     *scoreboard.Book
	Log      zerolog.Logger
}

// Open opens the configured store and loads settings and key bindings from
// it. Unreadable settings and bad bindings are logged and replaced by
// defaults.
func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	store, err := kv.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return New(ctx, cfg, store, log), nil
}

// New builds an App over an already opened store.
func New(ctx context.Context, cfg config.Config, store kv.Store, log zerolog.Logger) *App {
	a := &App{
		Config: cfg,
		Keymap: input.DefaultKeymap(),
		Store:  store,
		Log:    log,
	}

	settings, err := config.LoadSettings(ctx, store, config.DefaultSettings(cfg))
	if err != nil {
		log.Warn().Err(err).Msg("settings unreadable, using defaults")
	}
	a.Settings = settings

	if err := a.Keymap.Apply(settings.Keys); err != nil {
		log.Warn().Err(err).Msg("ignoring key binding")
	}

	var client *scoreboard.Client
	if cfg.SyncEnabled() {
		client = scoreboard.NewClient(cfg.Scoreboard.URL, cfg.Scoreboard.APIKey)
		log.Info().Str("url", cfg.Scoreboard.URL).Msg("scoreboard sync enabled")
	}
	a.Book = scoreboard.NewBook(store, client, settings.Player, log)

	log.Debug().
		Str("store", cfg.Store).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Dur("time_limit", cfg.TimeLimit).
		Str("player", settings.Player).
		Msg("app ready")
	return a
}

// NewRunner creates a runner for the configured board. High scores go through
// the store.
func (a *App) NewRunner(sink runner.Sink, onGameOver func(puzzle.Snapshot)) *runner.Runner {
	values := kv.NewLenient(a.Store, a.Log)
	return runner.New(runner.Options{
		Session:    a.Config.SessionOptions(values),
		Sink:       sink,
		OnGameOver: onGameOver,
		Logger:     &a.Log,
	})
}

// SaveSettings persists the current settings.
func (a *App) SaveSettings(ctx context.Context) error {
	return config.SaveSettings(ctx, a.Store, a.Settings)
}

// Close closes the store.
func (a *App) Close() error {
	return a.Store.Close()
}
