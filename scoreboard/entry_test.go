package scoreboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, score int, day int) scoreboard.Entry {
	return scoreboard.Entry{
		Name:  name,
		Score: score,
		Lines: score / 100,
		Level: 1,
		When:  time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func scores(entries []scoreboard.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestInsert(t *testing.T) {
	t.Run("sorted by score", func(t *testing.T) {
		var board []scoreboard.Entry
		board = scoreboard.Insert(board, entry("a", 300, 1))
		board = scoreboard.Insert(board, entry("b", 900, 2))
		board = scoreboard.Insert(board, entry("c", 100, 3))

		assert.Equal(t, []int{900, 300, 100}, scores(board))
	})

	t.Run("ties put the newest first", func(t *testing.T) {
		var board []scoreboard.Entry
		board = scoreboard.Insert(board, entry("old", 400, 1))
		board = scoreboard.Insert(board, entry("new", 400, 5))

		assert.Equal(t, "new", board[0].Name)
	})

	t.Run("keeps the top ten", func(t *testing.T) {
		var board []scoreboard.Entry
		for i := range 12 {
			board = scoreboard.Insert(board, entry(fmt.Sprint(i), i*100, i+1))
		}

		require.Len(t, board, scoreboard.MaxEntries)
		assert.Equal(t, 1100, board[0].Score)
		assert.Equal(t, 200, board[9].Score)
	})

	t.Run("does not modify its input", func(t *testing.T) {
		board := []scoreboard.Entry{entry("a", 100, 1)}
		_ = scoreboard.Insert(board, entry("b", 200, 2))
		assert.Equal(t, "a", board[0].Name)
	})
}

func TestQualifies(t *testing.T) {
	var board []scoreboard.Entry
	assert.True(t, scoreboard.Qualifies(board, 0))

	for i := range scoreboard.MaxEntries {
		board = scoreboard.Insert(board, entry("p", (i+1)*100, i+1))
	}
	assert.False(t, scoreboard.Qualifies(board, 100))
	assert.True(t, scoreboard.Qualifies(board, 101))
}

func TestMerge(t *testing.T) {
	local := []scoreboard.Entry{entry("me", 500, 1), entry("me", 200, 2)}
	remote := []scoreboard.Entry{entry("you", 700, 3), entry("me", 500, 1)}

	merged := scoreboard.Merge(local, remote)

	assert.Equal(t, []int{700, 500, 200}, scores(merged))
}

func TestEntryValidate(t *testing.T) {
	assert.NoError(t, entry("ok", 0, 1).Validate())

	bad := entry("", 100, 1)
	assert.Error(t, bad.Validate())

	bad = entry("x", -1, 1)
	assert.EqualError(t, bad.Validate(), "score and lines must not be negative")

	bad = entry("x", 100, 1)
	bad.Level = 0
	assert.EqualError(t, bad.Validate(), "level must be at least 1")

	bad = entry("x", 100, 1)
	bad.When = "yesterday"
	assert.Error(t, bad.Validate())
}

func TestNewEntry(t *testing.T) {
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3600))
	e := scoreboard.NewEntry("me", puzzle.Snapshot{Score: 400, Lines: 12, Level: 2}, when)

	assert.Equal(t, scoreboard.Entry{Name: "me", Score: 400, Lines: 12, Level: 2, When: "2024-05-06T06:08:09Z"}, e)
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	_, err := scoreboard.Record(ctx, store, entry("a", 100, 1))
	require.NoError(t, err)
	board, err := scoreboard.Record(ctx, store, entry("b", 300, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{300, 100}, scores(board))

	loaded, err := scoreboard.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, board, loaded)
}
