package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mageise/gtd-any/input"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/scoreboard"
)

var (
	borderColor = lipgloss.Color("15")
	textColor   = lipgloss.Color("250")
	accentColor = lipgloss.Color("226")
	warnColor   = lipgloss.Color("196")
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor).Bold(true)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(textColor)
}

func cellWidth(scale int) int {
	return 2 * max(scale, 1)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func viewGame(m model) string {
	snap := m.out.snap
	scale := m.app.Settings.Scale
	board := renderBoard(snap, scale, m.app.Settings.Ghost)
	info := renderInfo(snap, m.runner.Paused(), m.app.Keymap)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	return center(m.width, m.height, content)
}

// renderBoard draws the frame with a border. The ghost is drawn faint in
// empty cells only. On game over the border takes the accent color.
func renderBoard(snap puzzle.Snapshot, scale int, showGhost bool) string {
	frame := snap.Frame
	cw := cellWidth(scale)
	cellText := strings.Repeat(" ", cw)
	ghostText := strings.Repeat(".", cw)

	border := lipgloss.NewStyle().Foreground(borderColor)
	if snap.State == puzzle.GameOver && snap.Accent != puzzle.Empty {
		border = border.Foreground(lipgloss.Color(string(snap.Accent)))
	}

	ghost := map[[2]int]bool{}
	if showGhost && snap.Ghost != nil {
		for row, col := range snap.Ghost.Cells() {
			ghost[[2]int{row, col}] = true
		}
	}

	edge := border.Render("+" + strings.Repeat("-", frame.Width*cw) + "+")
	var b strings.Builder
	b.WriteString(edge)
	b.WriteString("\n")
	for row, cells := range frame.Cells {
		for range max(scale, 1) {
			b.WriteString(border.Render("|"))
			for col, c := range cells {
				switch {
				case c != puzzle.Empty:
					b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Render(cellText))
				case ghost[[2]int{row, col}]:
					b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(string(snap.Ghost.Color))).Faint(true).Render(ghostText))
				default:
					b.WriteString(cellText)
				}
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(edge)
	return b.String()
}

func renderInfo(snap puzzle.Snapshot, paused bool, keys input.Keymap) string {
	pad := lipgloss.NewStyle().PaddingLeft(2)
	var lines []string
	add := func(s string) { lines = append(lines, pad.Render(s)) }

	add(titleStyle().Render("Blockfall"))
	add("")
	add(fmt.Sprintf("Score: %d", snap.Score))
	add(fmt.Sprintf("Best:  %d", snap.HighScore))
	add(fmt.Sprintf("Lines: %d", snap.Lines))
	add(fmt.Sprintf("Level: %d", snap.Level))
	if snap.TimeBoxed {
		add(fmt.Sprintf("Left:  %s", puzzle.FormatClock(snap.Remaining)))
	} else {
		add(fmt.Sprintf("Time:  %s", puzzle.FormatClock(snap.Elapsed)))
	}
	add("")

	switch {
	case snap.State == puzzle.Idle:
		add(titleStyle().Render("Press S to start"))
	case snap.State == puzzle.GameOver:
		add(titleStyle().Render("Game over"))
		add(helpStyle().Render(string(snap.Reason)))
		if snap.NewBest {
			add(titleStyle().Render("New best!"))
		}
		add(helpStyle().Render("Press R to play again"))
	case paused:
		add(titleStyle().Render("Paused"))
	}
	add("")

	for _, intent := range []puzzle.Intent{puzzle.MoveLeft, puzzle.MoveRight, puzzle.SoftDrop, puzzle.Rotate, puzzle.HardDrop} {
		add(helpStyle().Render(fmt.Sprintf("%-10s %s", intent, keyList(keys.Keys(intent)))))
	}
	add(helpStyle().Render("P pause  G give up  Q quit"))
	add(helpStyle().Render("Tab scores  F2 ghost"))
	return strings.Join(lines, "\n")
}

func keyList(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

func viewScores(m model) string {
	var b strings.Builder
	b.WriteString(titleStyle().Render("Scores"))
	b.WriteString("\n\n")
	b.WriteString(renderScores(m.scores))
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(warnColor).Bold(true).Render(m.warning))
		b.WriteString("\n")
	}
	if m.syncing {
		b.WriteString("\n")
		b.WriteString(helpStyle().Render("Syncing..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle().Render("U to refresh, Tab to go back"))
	return center(m.width, m.height, b.String())
}

func renderScores(entries []scoreboard.Entry) string {
	if len(entries) == 0 {
		return "No scores yet.\n"
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%2d. %-12s %7d  L%2d  %s\n", i+1, e.Name, e.Score, e.Level, e.When)
	}
	return b.String()
}
