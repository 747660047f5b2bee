package puzzle

// IsValidPosition reports whether every occupied cell of p lies inside the
// board's columns, above its floor, and on an empty cell. Cells with a negative
// row are above the visible board: they are bounded horizontally but never
// overlap settled cells, which lets a piece spawn partially off the top.
func IsValidPosition(b *Board, p Piece) bool {
	for row, col := range p.Cells() {
		if col < 0 || col >= b.Width || row >= b.Height {
			return false
		}
		if row >= 0 && b.Cells[row][col] != Empty {
			return false
		}
	}
	return true
}

// Merge writes the piece color into every board cell it occupies. Cells above
// the board are dropped. This is the only way a piece becomes part of the board.
func Merge(b *Board, p Piece) {
	for row, col := range p.Cells() {
		if row < 0 || row >= b.Height || col < 0 || col >= b.Width {
			continue
		}
		b.Cells[row][col] = p.Color
	}
}

// DropDistance returns how many rows p can fall before it rests on the floor
// or on settled cells. An invalid starting position yields zero.
func DropDistance(b *Board, p Piece) int {
	n := 0
	for IsValidPosition(b, p.Moved(0, n+1)) {
		n++
	}
	return n
}
