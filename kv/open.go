package kv

import (
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates the store named by backend. File and SQLite stores live in dir,
// which defaults to DefaultDir.
func Open(backend, dir string) (Store, error) {
	if backend == BackendMemory {
		return NewMemory(), nil
	}

	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		dir = d
	}

	switch backend {
	case BackendFile, "":
		return OpenFile(filepath.Join(dir, "store.json"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "store.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
