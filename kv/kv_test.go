package kv_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]kv.Store {
	t.Helper()
	dir := t.TempDir()

	file, err := kv.OpenFile(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	db, err := kv.OpenSQLite(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]kv.Store{
		"memory": kv.NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, store.Set(ctx, "a", []byte(`{"n":1}`)))
			v, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"n":1}`, string(v))

			require.NoError(t, store.Set(ctx, "a", []byte(`2`)))
			v, err = store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "2", string(v))
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	value := []byte(`"abc"`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[1] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))
}

func TestFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	store, err := kv.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, puzzle.HighScoreKey, []byte("1200")))
	assert.Error(t, store.Set(ctx, "bad", []byte("{not json")))

	reopened, err := kv.OpenFile(path)
	require.NoError(t, err)
	v, err := reopened.Get(ctx, puzzle.HighScoreKey)
	require.NoError(t, err)
	assert.Equal(t, "1200", string(v))
	_, err = reopened.Get(ctx, "bad")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("[[["), 0o644))

	_, err := kv.OpenFile(path)
	assert.Error(t, err)
}

func TestSQLiteKeys(t *testing.T) {
	ctx := context.Background()
	db, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set(ctx, "b", []byte("1")))
	require.NoError(t, db.Set(ctx, "a", []byte("2")))
	require.NoError(t, db.Set(ctx, "b", []byte("3")))

	keys, err := db.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := kv.Open(kv.BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, s)

	s, err = kv.Open(kv.BackendFile, dir)
	require.NoError(t, err)
	assert.IsType(t, &kv.File{}, s)

	s, err = kv.Open(kv.BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &kv.SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = kv.Open("redis", dir)
	assert.Error(t, err)
}

type settings struct {
	Theme string `json:"theme"`
	Sound bool   `json:"sound"`
	Scale int    `json:"scale"`
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	def := settings{Theme: "dark", Sound: true, Scale: 1}

	got, err := kv.GetJSON(ctx, store, "settings", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	require.NoError(t, store.Set(ctx, "settings", []byte(`{"scale":3}`)))
	got, err = kv.GetJSON(ctx, store, "settings", def)
	require.NoError(t, err)
	assert.Equal(t, settings{Theme: "dark", Sound: true, Scale: 3}, got, "missing fields keep defaults")

	require.NoError(t, kv.SetJSON(ctx, store, "settings", settings{Theme: "light"}))
	got, err = kv.GetJSON(ctx, store, "settings", def)
	require.NoError(t, err)
	assert.Equal(t, settings{Theme: "light"}, got)

	require.NoError(t, store.Set(ctx, "settings", []byte(`"oops"`)))
	got, err = kv.GetJSON(ctx, store, "settings", def)
	assert.Error(t, err)
	assert.Equal(t, def, got)
}

type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, errBroken }

func (brokenStore) Set(ctx context.Context, key string, value []byte) error { return errBroken }

func (brokenStore) Close() error { return nil }

func TestLenient(t *testing.T) {
	t.Run("failures are absorbed and logged", func(t *testing.T) {
		var buf bytes.Buffer
		values := kv.NewLenient(brokenStore{}, zerolog.New(&buf))

		_, ok := values.Get(puzzle.HighScoreKey)
		assert.False(t, ok)
		values.Set(puzzle.HighScoreKey, []byte("10"))

		assert.Contains(t, buf.String(), "read failed")
		assert.Contains(t, buf.String(), "write failed")
		assert.Contains(t, buf.String(), "disk on fire")
	})

	t.Run("high score round trip", func(t *testing.T) {
		values := kv.NewLenient(kv.NewMemory(), zerolog.Nop())

		assert.Equal(t, 0, puzzle.LoadHighScore(values))
		best, wrote := puzzle.RecordHighScore(values, 700)
		assert.True(t, wrote)
		assert.Equal(t, 700, best)
		assert.Equal(t, 700, puzzle.LoadHighScore(values))
	})

	t.Run("broken store reads as no high score", func(t *testing.T) {
		values := kv.NewLenient(brokenStore{}, zerolog.Nop())
		assert.Equal(t, 0, puzzle.LoadHighScore(values))
	})
}
