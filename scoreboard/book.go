package scoreboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
)

// Book is the local leaderboard of one player, optionally synced with a
// remote server. Remote failures are logged and never fail local recording.
// Record and Pull are safe for concurrent use; mu serializes their
// load-merge-save of the stored list.
type Book struct {
	mu     sync.Mutex
	store  kv.Store
	client *Client
	player string
	log    zerolog.Logger
}

// NewBook creates a book over store. client may be nil.
func NewBook(store kv.Store, client *Client, player string, log zerolog.Logger) *Book {
	return &Book{
		store:  store,
		client: client,
		player: player,
		log:    log.With().Str("component", "scoreboard").Logger(),
	}
}

// Entries returns the local leaderboard.
func (b *Book) Entries(ctx context.Context) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Load(ctx, b.store)
}

// Record stores a finished game locally and, with a client, uploads it and
// merges the remote list back in.
func (b *Book) Record(ctx context.Context, snap puzzle.Snapshot, when time.Time) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := NewEntry(b.player, snap, when)
	entries, err := Record(ctx, b.store, entry)
	if err != nil {
		return nil, err
	}
	if b.client == nil {
		return entries, nil
	}

	remote, err := b.client.Upload(ctx, entry)
	if err != nil {
		b.log.Warn().Err(err).Msg("upload failed")
		return entries, nil
	}
	return b.merge(ctx, entries, remote)
}

// Pull merges the remote leaderboard into the local one.
func (b *Book) Pull(ctx context.Context) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := Load(ctx, b.store)
	if err != nil {
		return nil, err
	}
	if b.client == nil {
		return entries, nil
	}
	remote, err := b.client.Fetch(ctx, MaxEntries)
	if err != nil {
		b.log.Warn().Err(err).Msg("fetch failed")
		return entries, nil
	}
	return b.merge(ctx, entries, remote)
}

func (b *Book) merge(ctx context.Context, local, remote []Entry) ([]Entry, error) {
	merged := Merge(local, remote)
	if err := Save(ctx, b.store, merged); err != nil {
		return nil, err
	}
	return merged, nil
}
