// Package config reads process configuration from the environment, after
// loading an optional .env file, and persisted player settings from kv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
)

// Scoreboard configures the remote leaderboard, on both sides.
type Scoreboard struct {
	URL    string
	APIKey string
	Sync   bool

	Addr       string
	APIKeyHash string
	JWTSecret  string
}

// Config is the process configuration shared by the commands.
type Config struct {
	LogLevel string

	Store   string
	DataDir string

	Width     int
	Height    int
	TimeLimit time.Duration
	Seed      uint64
	Player    string

	Scoreboard Scoreboard
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store:    kv.BackendFile,
		Width:    puzzle.DefaultWidth,
		Height:   puzzle.DefaultHeight,
		Player:   "player",
		Scoreboard: Scoreboard{
			Addr: ":5180",
		},
	}
}

// Load reads .env files, if present, and then the environment. Variables
// already set in the environment win over .env entries.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	e := env{lookup: lookup}

	c.LogLevel = e.str("LOG_LEVEL", c.LogLevel)
	c.Store = e.str("BLOCKFALL_STORE", c.Store)
	c.DataDir = e.str("BLOCKFALL_DATA_DIR", c.DataDir)
	c.Player = e.str("BLOCKFALL_PLAYER", c.Player)
	c.Width = e.integer("BLOCKFALL_WIDTH", c.Width)
	c.Height = e.integer("BLOCKFALL_HEIGHT", c.Height)
	c.TimeLimit = e.duration("BLOCKFALL_TIME_LIMIT", c.TimeLimit)
	c.Seed = e.unsigned("BLOCKFALL_SEED", c.Seed)

	c.Scoreboard.URL = e.str("SCOREBOARD_URL", c.Scoreboard.URL)
	c.Scoreboard.APIKey = e.str("SCOREBOARD_API_KEY", c.Scoreboard.APIKey)
	c.Scoreboard.Sync = e.boolean("SCOREBOARD_SYNC", c.Scoreboard.Sync)
	c.Scoreboard.Addr = e.str("SCOREBOARD_ADDR", c.Scoreboard.Addr)
	c.Scoreboard.APIKeyHash = e.str("SCOREBOARD_API_KEY_HASH", c.Scoreboard.APIKeyHash)
	c.Scoreboard.JWTSecret = e.str("SCOREBOARD_JWT_SECRET", c.Scoreboard.JWTSecret)

	if err := e.err(); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate checks values that parse but cannot be used.
func (c Config) Validate() error {
	switch c.Store {
	case kv.BackendMemory, kv.BackendFile, kv.BackendSQLite:
	default:
		return fmt.Errorf("BLOCKFALL_STORE: unknown backend %q", c.Store)
	}
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("board must be at least 4x4, got %dx%d", c.Width, c.Height)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("BLOCKFALL_TIME_LIMIT must not be negative")
	}
	return nil
}

// SyncEnabled reports whether finished games are uploaded.
func (c Config) SyncEnabled() bool {
	return c.Scoreboard.Sync && c.Scoreboard.URL != ""
}

// SessionOptions returns session options for this configuration.
func (c Config) SessionOptions(values puzzle.Values) puzzle.Options {
	return puzzle.Options{
		Width:      c.Width,
		Height:     c.Height,
		Seed:       c.Seed,
		TimeLimit:  c.TimeLimit,
		HighScores: values,
	}
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.get(key); ok {
		return v
	}
	return def
}

func (e *env) integer(key string, def int) int {
	v, ok := e.get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *env) unsigned(key string, def uint64) uint64 {
	v, ok := e.get(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	v, ok := e.get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.get(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (e *env) err() error { return errors.Join(e.errs...) }
