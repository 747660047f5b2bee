// Package scoreboard keeps a top-ten list of finished games, serves it over
// HTTP and syncs it with a remote server.
package scoreboard

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
)

// MaxEntries is the length of a leaderboard.
const MaxEntries = 10

// LeaderboardKey is the kv key a leaderboard is stored under.
const LeaderboardKey = "blockfall-leaderboard"

// Entry is one finished game on a leaderboard. When is an RFC 3339 timestamp.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
	When  string `json:"when"`
}

// NewEntry builds an entry for a finished game.
func NewEntry(name string, snap puzzle.Snapshot, when time.Time) Entry {
	return Entry{
		Name:  name,
		Score: snap.Score,
		Lines: snap.Lines,
		Level: snap.Level,
		When:  when.UTC().Format(time.RFC3339),
	}
}

// Validate reports whether the entry can be listed.
func (e Entry) Validate() error {
	name := strings.TrimSpace(e.Name)
	if name == "" || len(name) > 24 {
		return fmt.Errorf("name must be 1-24 chars")
	}
	if e.Score < 0 || e.Lines < 0 {
		return fmt.Errorf("score and lines must not be negative")
	}
	if e.Level < 1 {
		return fmt.Errorf("level must be at least 1")
	}
	if _, err := time.Parse(time.RFC3339, e.When); err != nil {
		return fmt.Errorf("when: %w", err)
	}
	return nil
}

func (e Entry) key() string {
	return e.Name + "|" + e.When + "|" + strconv.Itoa(e.Score)
}

// compare orders by score, highest first; ties put the newest first.
func compare(a, b Entry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return strings.Compare(b.When, a.When)
}

// Insert adds entry to a leaderboard and keeps the best MaxEntries.
func Insert(entries []Entry, entry Entry) []Entry {
	out := append(slices.Clone(entries), entry)
	slices.SortStableFunc(out, compare)
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// Qualifies reports whether a score would make it onto the leaderboard.
func Qualifies(entries []Entry, score int) bool {
	if len(entries) < MaxEntries {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// Merge combines two leaderboards, dropping duplicate games.
func Merge(local, remote []Entry) []Entry {
	merged := make([]Entry, 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(local)+len(remote))
	for _, entry := range slices.Concat(local, remote) {
		k := entry.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, entry)
	}
	slices.SortStableFunc(merged, compare)
	if len(merged) > MaxEntries {
		merged = merged[:MaxEntries]
	}
	return merged
}

// Load reads the leaderboard stored in s.
func Load(ctx context.Context, s kv.Store) ([]Entry, error) {
	entries, err := kv.GetJSON(ctx, s, LeaderboardKey, []Entry{})
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return entries, nil
}

// Save writes the leaderboard to s.
func Save(ctx context.Context, s kv.Store, entries []Entry) error {
	if err := kv.SetJSON(ctx, s, LeaderboardKey, entries); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

// Record inserts entry into the leaderboard stored in s and returns the
// updated list.
func Record(ctx context.Context, s kv.Store, entry Entry) ([]Entry, error) {
	entries, err := Load(ctx, s)
	if err != nil {
		return nil, err
	}
	entries = Insert(entries, entry)
	if err := Save(ctx, s, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
