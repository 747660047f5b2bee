package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mageise/gtd-any/puzzle"
)

const (
	cellSize    = 30
	boardOffset = 50
	panelWidth  = 200
	leaderRows  = 5
)

var (
	background   = color.RGBA{24, 24, 32, 255}
	gridColor    = color.RGBA{40, 40, 52, 255}
	outlineColor = color.RGBA{200, 200, 200, 255}
	ghostColor   = color.RGBA{255, 255, 255, 80}
	fallbackCell = color.RGBA{128, 128, 128, 255}
)

type layout struct {
	cols, rows int
	cell       float32
}

func newLayout(cols, rows, scale int) layout {
	return layout{cols: cols, rows: rows, cell: float32(cellSize * max(scale, 1))}
}

// size returns the window size that fits the board and the side panel.
func (l layout) size() (int, int) {
	w := boardOffset*2 + int(l.cell)*l.cols + panelWidth
	h := boardOffset*2 + int(l.cell)*l.rows
	return w, h
}

// boardSpan returns the x of the board's left edge and its width in pixels.
func (l layout) boardSpan() (x, width float64) {
	return boardOffset, float64(l.cell) * float64(l.cols)
}

func (l layout) cellAt(row, col int) (x, y float32) {
	return boardOffset + float32(col)*l.cell, boardOffset + float32(row)*l.cell
}

func cellColor(c puzzle.Color) color.Color {
	r, g, b, ok := c.RGB()
	if !ok {
		return fallbackCell
	}
	return color.RGBA{r, g, b, 255}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.drawBoard(screen)
	g.drawPanel(screen)
	g.imgui.DrawOverlay(screen)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	l := g.layout
	frame := g.snap.Frame
	bw, bh := l.cell*float32(l.cols), l.cell*float32(l.rows)

	border := color.Color(outlineColor)
	if g.snap.State == puzzle.GameOver && g.snap.Accent != puzzle.Empty {
		border = cellColor(g.snap.Accent)
	}
	vector.StrokeRect(screen, boardOffset-2, boardOffset-2, bw+4, bh+4, 2, border, false)

	for row := range l.rows {
		for col := range l.cols {
			x, y := l.cellAt(row, col)
			vector.StrokeRect(screen, x, y, l.cell, l.cell, 1, gridColor, false)

			if row >= len(frame.Cells) || col >= len(frame.Cells[row]) {
				continue
			}
			if c := frame.Cells[row][col]; c != puzzle.Empty {
				vector.DrawFilledRect(screen, x+1, y+1, l.cell-2, l.cell-2, cellColor(c), false)
			}
		}
	}

	if g.snap.Ghost == nil || !g.app.Settings.Ghost {
		return
	}
	for row, col := range g.snap.Ghost.Cells() {
		if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
			continue
		}
		if frame.Cells[row][col] != puzzle.Empty {
			continue
		}
		x, y := l.cellAt(row, col)
		vector.DrawFilledRect(screen, x+1, y+1, l.cell-2, l.cell-2, ghostColor, false)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	s := g.snap
	bx, bw := g.layout.boardSpan()
	x := int(bx+bw) + 30
	y := boardOffset

	line := func(format string, args ...any) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(format, args...), x, y)
		y += 20
	}

	line("SCORE: %d", s.Score)
	line("BEST:  %d", s.HighScore)
	line("LEVEL: %d", s.Level)
	line("LINES: %d", s.Lines)
	if s.TimeBoxed {
		line("LEFT:  %s", puzzle.FormatClock(s.Remaining))
	} else {
		line("TIME:  %s", puzzle.FormatClock(s.Elapsed))
	}
	y += 20

	switch {
	case s.State == puzzle.Idle:
		line("Press S to start")
	case s.State == puzzle.GameOver:
		line("GAME OVER")
		line("(%s)", s.Reason)
		if s.NewBest {
			line("NEW BEST!")
		}
		line("Press R to restart")
	case g.runner.Paused():
		line("PAUSED")
		line("Press P to resume")
	}

	if len(g.leaders) == 0 {
		return
	}
	y += 20
	line("LEADERBOARD")
	for i, e := range g.leaders[:min(len(g.leaders), leaderRows)] {
		line("%d. %-8.8s %6d", i+1, e.Name, e.Score)
	}
}
