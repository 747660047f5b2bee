package scoreboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/scoreboard"
)

const testKey = "let-me-in"

func newTestServer(t *testing.T) (*httptest.Server, kv.Store) {
	t.Helper()
	hash, err := scoreboard.HashAPIKey(testKey)
	require.NoError(t, err)

	store := kv.NewMemory()
	srv := scoreboard.NewServer(scoreboard.ServerOptions{
		Store:      store,
		APIKeyHash: hash,
		JWTSecret:  []byte("test-secret"),
		Logger:     zerolog.Nop(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func TestServerRoutes(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad limit", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/scores?limit=zero")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list honours limit", func(t *testing.T) {
		for i := range 4 {
			_, err := scoreboard.Record(ctx, store, entry("seed", (i+1)*100, i+1))
			require.NoError(t, err)
		}

		client := scoreboard.NewClient(ts.URL, "")
		got, err := client.Fetch(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{400, 300}, scores(got))
	})

	t.Run("upload without token", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/scores", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token with wrong key", func(t *testing.T) {
		client := scoreboard.NewClient(ts.URL, "wrong")
		_, err := client.Upload(ctx, entry("me", 100, 1))

		var status scoreboard.StatusError
		require.True(t, errors.As(err, &status))
		assert.Equal(t, http.StatusUnauthorized, int(status))
	})

	t.Run("upload", func(t *testing.T) {
		client := scoreboard.NewClient(ts.URL+"/", testKey)
		got, err := client.Upload(ctx, entry("me", 1000, 9))
		require.NoError(t, err)
		assert.Equal(t, 1000, got[0].Score)

		got, err = client.Upload(ctx, entry("me", 50, 10))
		require.NoError(t, err)
		assert.Equal(t, []int{1000, 400, 300, 200, 100, 50}, scores(got))
	})

	t.Run("invalid entry", func(t *testing.T) {
		client := scoreboard.NewClient(ts.URL, testKey)
		_, err := client.Upload(ctx, scoreboard.Entry{Name: "", Score: 1, Level: 1})

		var status scoreboard.StatusError
		require.True(t, errors.As(err, &status))
		assert.Equal(t, http.StatusUnprocessableEntity, int(status))
	})
}

func TestServerExpiredToken(t *testing.T) {
	hash, err := scoreboard.HashAPIKey(testKey)
	require.NoError(t, err)

	now := time.Now()
	srv := scoreboard.NewServer(scoreboard.ServerOptions{
		Store:      kv.NewMemory(),
		APIKeyHash: hash,
		JWTSecret:  []byte("test-secret"),
		TokenTTL:   time.Hour,
		Now:        func() time.Time { return now },
	})

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.Header.Set(scoreboard.APIKeyHeader, testKey)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Body.String()
	token = token[strings.Index(token, `"token":"`)+9:]
	token = token[:strings.Index(token, `"`)]

	now = now.Add(2 * time.Hour)
	req = httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServerUploadsDisabled(t *testing.T) {
	srv := scoreboard.NewServer(scoreboard.ServerOptions{Store: kv.NewMemory()})

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.Header.Set(scoreboard.APIKeyHeader, testKey)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBook(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	t.Run("local only", func(t *testing.T) {
		book := scoreboard.NewBook(kv.NewMemory(), nil, "me", zerolog.Nop())

		got, err := book.Record(ctx, puzzle.Snapshot{Score: 300, Lines: 3, Level: 1}, when)
		require.NoError(t, err)
		assert.Equal(t, []int{300}, scores(got))

		got, err = book.Pull(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("synced", func(t *testing.T) {
		ts, remote := newTestServer(t)
		_, err := scoreboard.Record(ctx, remote, entry("rival", 900, 1))
		require.NoError(t, err)

		local := kv.NewMemory()
		book := scoreboard.NewBook(local, scoreboard.NewClient(ts.URL, testKey), "me", zerolog.Nop())

		got, err := book.Record(ctx, puzzle.Snapshot{Score: 300, Lines: 3, Level: 1}, when)
		require.NoError(t, err)
		assert.Equal(t, []int{900, 300}, scores(got))

		stored, err := scoreboard.Load(ctx, local)
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("unreachable remote", func(t *testing.T) {
		ts, _ := newTestServer(t)
		url := ts.URL
		ts.Close()

		book := scoreboard.NewBook(kv.NewMemory(), scoreboard.NewClient(url, testKey), "me", zerolog.Nop())
		got, err := book.Record(ctx, puzzle.Snapshot{Score: 100, Lines: 1, Level: 1}, when)
		require.NoError(t, err)
		assert.Equal(t, []int{100}, scores(got))

		got, err = book.Pull(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("concurrent record and pull", func(t *testing.T) {
		ts, _ := newTestServer(t)
		local := kv.NewMemory()
		book := scoreboard.NewBook(local, scoreboard.NewClient(ts.URL, testKey), "me", zerolog.Nop())

		const games = 6
		var wg sync.WaitGroup
		for i := range games {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := book.Pull(ctx)
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				snap := puzzle.Snapshot{Score: (i + 1) * 100, Lines: i + 1, Level: 1}
				_, err := book.Record(ctx, snap, when.Add(time.Duration(i)*time.Minute))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := book.Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{600, 500, 400, 300, 200, 100}, scores(stored))
	})
}
