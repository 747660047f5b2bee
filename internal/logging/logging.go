// Package logging sets up zerolog for the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at level. Console output is human
// readable; otherwise lines are JSON.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Stderr returns a console logger on stderr.
func Stderr(level string) zerolog.Logger {
	return New(os.Stderr, level, true)
}

// File opens name in the temp dir for appending and returns a JSON logger on
// it. Full-screen front ends log here since they own the terminal.
func File(name, level string) (zerolog.Logger, io.Closer, error) {
	path := filepath.Join(os.TempDir(), name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return New(f, level, false), f, nil
}
