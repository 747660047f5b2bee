// Package puzzle implements a falling-block puzzle simulation: a fixed grid of
// settled cells, one active piece, a gravity step and the discrete player
// intents that move the piece between steps.
package puzzle

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Color is the opaque identifier a piece leaves in the cells it fills.
type Color string

// RGB decodes a "#rrggbb" color. ok is false for Empty or any other form.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexDigit(c[1+2*i])
		lo, ok2 := hexDigit(c[2+2*i])
		if !ok1 || !ok2 {
			return 0, 0, 0, false
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], true
}

func hexDigit(ch byte) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// Cell holds either Empty or the color of the piece that filled it.
type Cell = Color

// Empty marks an unoccupied cell.
const Empty Cell = ""

// Board is a fixed-size grid of cells indexed as Cells[row][col].
// Row 0 is the top of the board.
type Board struct {
	Width  int
	Height int
	Cells  [][]Cell
}

// NewBoard creates a board with every cell empty.
func NewBoard(width, height int) *Board {
	b := &Board{
		Width:  width,
		Height: height,
		Cells:  make([][]Cell, height),
	}
	for r := range b.Cells {
		b.Cells[r] = make([]Cell, width)
	}
	return b
}

// At returns the cell at (row, col). Coordinates outside the board read as Empty.
func (b *Board) At(row, col int) Cell {
	if row < 0 || row >= b.Height || col < 0 || col >= b.Width {
		return Empty
	}
	return b.Cells[row][col]
}

// Filled reports whether the cell at (row, col) is inside the board and occupied.
func (b *Board) Filled(row, col int) bool {
	return b.At(row, col) != Empty
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.Cells {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		Width:  b.Width,
		Height: b.Height,
		Cells:  make([][]Cell, b.Height),
	}
	for r, row := range b.Cells {
		c.Cells[r] = append([]Cell(nil), row...)
	}
	return c
}

func (b *Board) rowFull(r int) bool {
	for _, c := range b.Cells[r] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indexes of every full row, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for r := range b.Cells {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearFullLines removes every full row in one pass, shifts the remaining rows
// down keeping their order and refills the top with empty rows. It returns the
// number of rows removed.
func ClearFullLines(b *Board) int {
	kept := make([][]Cell, 0, b.Height)
	for r, row := range b.Cells {
		if !b.rowFull(r) {
			kept = append(kept, row)
		}
	}

	cleared := b.Height - len(kept)
	if cleared == 0 {
		return 0
	}

	cells := make([][]Cell, 0, b.Height)
	for range cleared {
		cells = append(cells, make([]Cell, b.Width))
	}
	b.Cells = append(cells, kept...)
	return cleared
}
