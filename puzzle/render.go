package puzzle

import (
	"fmt"
	"strings"
	"time"
)

// Frame is a drawable copy of the board with the active piece overlaid.
type Frame struct {
	Width  int
	Height int
	Cells  [][]Cell
}

// Project builds a frame from the board and an optional active piece. Piece
// cells above the board are not drawn. Neither argument is modified.
func Project(b *Board, p *Piece) Frame {
	f := Frame{Width: b.Width, Height: b.Height, Cells: b.Clone().Cells}
	if p == nil {
		return f
	}
	for row, col := range p.Cells() {
		if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
			continue
		}
		f.Cells[row][col] = p.Color
	}
	return f
}

// Ghost returns where p would land if hard-dropped.
func Ghost(b *Board, p Piece) Piece {
	return p.Moved(0, DropDistance(b, p))
}

// String renders the frame one text row per board row, using '.' for empty
// cells and the letter of the kind whose color fills the cell.
func (f Frame) String() string {
	var sb strings.Builder
	for r, row := range f.Cells {
		for _, c := range row {
			sb.WriteByte(cellGlyph(c))
		}
		if r < len(f.Cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cellGlyph(c Cell) byte {
	if c == Empty {
		return '.'
	}
	for _, k := range Kinds {
		if ColorOf(k) == c {
			return k.String()[0]
		}
	}
	return '#'
}

// Snapshot is everything a render sink needs after a state change.
type Snapshot struct {
	Frame     Frame
	Ghost     *Piece
	State     RunState
	Score     int
	Lines     int
	Level     int
	HighScore int
	NewBest   bool
	Elapsed   time.Duration
	Remaining time.Duration
	TimeBoxed bool
	Reason    EndReason
	Accent    Color
}

// Snapshot projects the session into a render snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     Project(s.board, s.piece),
		State:     s.state,
		Score:     s.score,
		Lines:     s.lines,
		Level:     s.Level(),
		HighScore: s.highScore,
		NewBest:   s.newBest,
		Elapsed:   s.elapsed,
		Reason:    s.reason,
		Accent:    s.accent,
	}
	snap.Remaining, snap.TimeBoxed = s.Remaining()
	if s.piece != nil {
		g := Ghost(s.board, *s.piece)
		snap.Ghost = &g
	}
	return snap
}

// FormatClock renders d as minutes and zero-padded seconds, e.g. "2:05".
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
