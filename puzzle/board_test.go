package puzzle_test

import (
	"testing"

	"github.com/mageise/gtd-any/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *puzzle.Board, row int, color puzzle.Color, skip ...int) {
	for c := range b.Width {
		b.Cells[row][c] = color
	}
	for _, c := range skip {
		b.Cells[row][c] = puzzle.Empty
	}
}

func TestNewBoard(t *testing.T) {
	b := puzzle.NewBoard(puzzle.DefaultWidth, puzzle.DefaultHeight)

	assert.Equal(t, 10, b.Width)
	assert.Equal(t, 20, b.Height)
	require.Len(t, b.Cells, 20)
	for _, row := range b.Cells {
		assert.Len(t, row, 10)
	}
	assert.Zero(t, b.FilledCount())
	assert.Empty(t, b.FullRows())
}

func TestBoardAtOutside(t *testing.T) {
	b := puzzle.NewBoard(4, 4)
	fillRow(b, 3, "x")

	assert.False(t, b.Filled(-1, 0))
	assert.False(t, b.Filled(4, 0))
	assert.False(t, b.Filled(3, 4))
	assert.True(t, b.Filled(3, 3))
}

func TestBoardClone(t *testing.T) {
	b := puzzle.NewBoard(4, 4)
	c := b.Clone()
	c.Cells[0][0] = "x"

	assert.Equal(t, puzzle.Empty, b.Cells[0][0])
	assert.Equal(t, puzzle.Color("x"), c.Cells[0][0])
}

func TestClearFullLines(t *testing.T) {
	t.Run("no full rows", func(t *testing.T) {
		b := puzzle.NewBoard(10, 20)
		fillRow(b, 19, "a", 4)
		before := b.Clone()

		assert.Zero(t, puzzle.ClearFullLines(b))
		assert.Equal(t, before.Cells, b.Cells)
	})

	t.Run("single row shifts everything above down", func(t *testing.T) {
		b := puzzle.NewBoard(10, 20)
		fillRow(b, 19, "a")
		b.Cells[18][0] = "b"
		b.Cells[0][9] = "c"

		cleared := puzzle.ClearFullLines(b)

		assert.Equal(t, 1, cleared)
		assert.Len(t, b.Cells, 20)
		assert.Equal(t, puzzle.Color("b"), b.Cells[19][0])
		assert.Equal(t, puzzle.Color("c"), b.Cells[1][9])
		assert.Equal(t, make([]puzzle.Cell, 10), b.Cells[0])
		assert.Equal(t, 2, b.FilledCount())
	})

	t.Run("non-adjacent rows clear together", func(t *testing.T) {
		b := puzzle.NewBoard(10, 20)
		fillRow(b, 19, "a")
		fillRow(b, 18, "b", 0)
		fillRow(b, 17, "c")
		b.Cells[16][5] = "d"

		cleared := puzzle.ClearFullLines(b)

		assert.Equal(t, 2, cleared)
		assert.Len(t, b.Cells, 20)
		assert.Equal(t, puzzle.Empty, b.Cells[19][0])
		assert.Equal(t, puzzle.Color("b"), b.Cells[19][1])
		assert.Equal(t, puzzle.Color("d"), b.Cells[18][5])
		assert.Equal(t, 10, b.FilledCount())
	})

	t.Run("filled cells outside cleared rows are preserved", func(t *testing.T) {
		b := puzzle.NewBoard(10, 20)
		for r := 12; r < 20; r++ {
			fillRow(b, r, "x", r%10)
		}
		fillRow(b, 15, "y")
		fillRow(b, 19, "y")
		before := b.FilledCount()

		cleared := puzzle.ClearFullLines(b)

		assert.Equal(t, 2, cleared)
		assert.Equal(t, before-2*b.Width, b.FilledCount())
		assert.Len(t, b.Cells, 20)
	})

	t.Run("whole board", func(t *testing.T) {
		b := puzzle.NewBoard(3, 4)
		for r := range 4 {
			fillRow(b, r, "z")
		}

		assert.Equal(t, 4, puzzle.ClearFullLines(b))
		assert.Zero(t, b.FilledCount())
		assert.Len(t, b.Cells, 4)
	})
}

func TestColorRGB(t *testing.T) {
	r, g, b, ok := puzzle.ColorOf(puzzle.KindI).RGB()
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0x3b, 0x82, 0xf6}, [3]uint8{r, g, b})

	_, _, _, ok = puzzle.Color("#ABCDEF").RGB()
	assert.True(t, ok)

	for _, c := range []puzzle.Color{puzzle.Empty, "red", "#12345", "#12345g"} {
		_, _, _, ok := c.RGB()
		assert.False(t, ok, "%q", c)
	}
}
