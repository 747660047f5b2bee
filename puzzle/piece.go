package puzzle

import (
	"iter"
	"math/rand/v2"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies one of the seven shape templates.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every shape template in declaration order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// Shape is a bitmap of occupied cells indexed as [row][col].
type Shape [][]bool

type template struct {
	shape Shape
	color Color
}

var templates = [...]template{
	KindI: {shape: parseShape("1111"), color: "#3b82f6"},
	KindO: {shape: parseShape("11", "11"), color: "#eab308"},
	KindT: {shape: parseShape("010", "111"), color: "#a855f7"},
	KindS: {shape: parseShape("011", "110"), color: "#22c55e"},
	KindZ: {shape: parseShape("110", "011"), color: "#ef4444"},
	KindJ: {shape: parseShape("100", "111"), color: "#f97316"},
	KindL: {shape: parseShape("001", "111"), color: "#06b6d4"},
}

func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for r, row := range rows {
		s[r] = make([]bool, len(row))
		for c, ch := range row {
			s[r][c] = ch == '1'
		}
	}
	return s
}

// ShapeOf returns a copy of the template bitmap for kind.
func ShapeOf(kind Kind) Shape {
	return templates[kind].shape.Clone()
}

// ColorOf returns the color of kind.
func ColorOf(kind Kind) Color {
	return templates[kind].color
}

// Palette returns the colors of all seven kinds in declaration order.
func Palette() []Color {
	colors := make([]Color, len(templates))
	for i, t := range templates {
		colors[i] = t.color
	}
	return colors
}

// Width returns the number of columns in the bitmap.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the bitmap.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the bitmap.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for r, row := range s {
		c[r] = append([]bool(nil), row...)
	}
	return c
}

// Equal reports whether two bitmaps have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(o[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the bitmap turned 90 degrees clockwise. A rows×cols shape
// becomes cols×rows. Rotation is purely geometric and never fails.
func (s Shape) Rotate() Shape {
	rows := s.Height()
	cols := s.Width()
	rotated := make(Shape, cols)
	for c := range cols {
		rotated[c] = make([]bool, rows)
		for r := range rows {
			rotated[c][r] = s[rows-1-r][c]
		}
	}
	return rotated
}

// Piece is an instantiated shape placed on a board. X and Y are the board
// column and row of the shape's top-left corner; Y may be negative while the
// piece is partially above the board.
type Piece struct {
	Kind  Kind
	Color Color
	Shape Shape
	X, Y  int
}

// NewPiece creates a piece of kind horizontally centred on a board of the
// given width, at row zero.
func NewPiece(kind Kind, boardWidth int) Piece {
	shape := ShapeOf(kind)
	return Piece{
		Kind:  kind,
		Color: ColorOf(kind),
		Shape: shape,
		X:     (boardWidth - shape.Width()) / 2,
		Y:     0,
	}
}

// Moved returns a copy of the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy of the piece with its bitmap turned clockwise.
// Callers validate the result with IsValidPosition before committing it.
func (p Piece) Rotated() Piece {
	p.Shape = p.Shape.Rotate()
	return p
}

// Cells yields the board (row, col) of every occupied cell of the piece.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, row := range p.Shape {
			for c, filled := range row {
				if !filled {
					continue
				}
				if !yield(p.Y+r, p.X+c) {
					return
				}
			}
		}
	}
}

// Spawner chooses the kind of the next piece.
type Spawner interface {
	Next() Kind
}

// UniformSpawner picks every kind independently with equal probability. There
// is no bag: a kind may go unseen for arbitrarily many spawns.
type UniformSpawner struct {
	rng *rand.Rand
}

// NewUniformSpawner creates a spawner seeded with seed.
func NewUniformSpawner(seed uint64) *UniformSpawner {
	return &UniformSpawner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *UniformSpawner) Next() Kind {
	return Kinds[u.rng.IntN(len(Kinds))]
}

// Sequence replays a fixed list of kinds, wrapping around at the end.
type Sequence struct {
	kinds []Kind
	next  int
}

// NewSequence creates a spawner that yields kinds in order. With no kinds it
// cycles through Kinds.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = Kinds[:]
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() Kind {
	k := s.kinds[s.next%len(s.kinds)]
	s.next++
	return k
}
