package puzzle_test

import (
	"testing"

	"github.com/mageise/gtd-any/puzzle"
	"github.com/stretchr/testify/assert"
)

func TestRecordHighScore(t *testing.T) {
	t.Run("higher score replaces stored", func(t *testing.T) {
		values := withHighScore(300)

		best, updated := puzzle.RecordHighScore(values, 500)

		assert.True(t, updated)
		assert.Equal(t, 500, best)
		assert.Equal(t, "500", string(values[puzzle.HighScoreKey]))
	})

	t.Run("lower score leaves stored", func(t *testing.T) {
		values := withHighScore(300)

		best, updated := puzzle.RecordHighScore(values, 200)

		assert.False(t, updated)
		assert.Equal(t, 300, best)
		assert.Equal(t, "300", string(values[puzzle.HighScoreKey]))
	})

	t.Run("nothing stored yet", func(t *testing.T) {
		values := memValues{}

		best, updated := puzzle.RecordHighScore(values, 10)

		assert.True(t, updated)
		assert.Equal(t, 10, best)
	})

	t.Run("zero score is never written", func(t *testing.T) {
		values := memValues{}

		_, updated := puzzle.RecordHighScore(values, 0)

		assert.False(t, updated)
		assert.Empty(t, values)
	})
}

func TestLoadHighScore(t *testing.T) {
	assert.Zero(t, puzzle.LoadHighScore(nil))
	assert.Zero(t, puzzle.LoadHighScore(memValues{}))
	assert.Zero(t, puzzle.LoadHighScore(memValues{puzzle.HighScoreKey: []byte(`"oops"`)}))
	assert.Equal(t, 42, puzzle.LoadHighScore(withHighScore(42)))
}
