package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/runner"
)

type kindRow struct {
	Kind    puzzle.Kind
	Color   puzzle.Color
	Spawned int
	Share   float32
	Drought int
}

func kindRows(stats *puzzle.Stats) []kindRow {
	rows := make([]kindRow, 0, len(puzzle.Kinds))
	total := stats.Pieces()
	for _, k := range puzzle.Kinds {
		row := kindRow{
			Kind:    k,
			Color:   puzzle.ColorOf(k),
			Spawned: stats.Spawned(k),
			Drought: stats.Drought(k),
		}
		if total > 0 {
			row.Share = float32(row.Spawned) / float32(total)
		}
		rows = append(rows, row)
	}
	return rows
}

func colorVec(c puzzle.Color) imgui.Vec4 {
	r, g, b, ok := c.RGB()
	if !ok {
		return imgui.NewVec4(1, 1, 1, 1)
	}
	return imgui.NewVec4(float32(r)/255, float32(g)/255, float32(b)/255, 1)
}

// SessionWindow shows the state of a runner's session with game controls and
// piece statistics. It reads the session directly, so it must be rendered on
// the goroutine that steps the runner.
type SessionWindow struct {
	runner *runner.Runner
}

func NewSessionWindow(r *runner.Runner) *SessionWindow {
	return &SessionWindow{runner: r}
}

func (sw *SessionWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 400), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := sw.runner.Session()
	state := s.State()

	switch {
	case state == puzzle.Playing && sw.runner.Paused():
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	case state == puzzle.Playing:
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "PLAYING")
	case state == puzzle.GameOver:
		imgui.TextColored(colorVec(s.Accent()), fmt.Sprintf("GAME OVER (%s)", s.EndReason()))
	default:
		imgui.Text("IDLE")
	}

	imgui.Text(fmt.Sprintf("Game: %d", sw.runner.Games()))
	imgui.Text(fmt.Sprintf("Score: %d  High: %d", s.Score(), s.HighScore()))
	imgui.Text(fmt.Sprintf("Lines: %d  Level: %d", s.Lines(), s.Level()))
	imgui.Text(fmt.Sprintf("Drop interval: %v", puzzle.DropInterval(s.Level())))
	if remaining, ok := s.Remaining(); ok {
		imgui.Text(fmt.Sprintf("Time: %s left", puzzle.FormatClock(remaining)))
	} else {
		imgui.Text(fmt.Sprintf("Time: %s", puzzle.FormatClock(s.Elapsed())))
	}
	if p, ok := s.Piece(); ok {
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d)", p.Kind, p.X, p.Y))
	}

	imgui.Separator()
	sw.renderControls(state)

	imgui.Separator()
	if imgui.TreeNodeStr("Pieces") {
		sw.renderStats(s.Stats())
		imgui.TreePop()
	}

	imgui.End()
}

func (sw *SessionWindow) renderControls(state puzzle.RunState) {
	if state != puzzle.Playing {
		if imgui.Button("Start") {
			sw.runner.Start()
		}
		return
	}

	if sw.runner.Paused() {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.3, 0.8, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
		if imgui.Button("Resume") {
			sw.runner.Unpause()
		}
	} else {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.7, 0.2, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.8, 0.3, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.6, 0.1, 0.1, 1.0))
		if imgui.Button("Pause") {
			sw.runner.Pause()
		}
	}
	imgui.PopStyleColor()
	imgui.PopStyleColor()
	imgui.PopStyleColor()

	imgui.SameLine()
	if imgui.Button("Give up") {
		sw.runner.GiveUp()
	}
}

func (sw *SessionWindow) renderStats(stats *puzzle.Stats) {
	imgui.Text(fmt.Sprintf("Pieces: %d  Longest drought: %d", stats.Pieces(), stats.LongestDrought()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("KindTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Spawned")
		imgui.TableSetupColumn("Share")
		imgui.TableSetupColumn("Since seen")
		imgui.TableHeadersRow()

		for _, row := range kindRows(stats) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.TextColored(colorVec(row.Color), row.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Spawned))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f%%", row.Share*100))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Drought))
		}
		imgui.EndTable()
	}

	for n := 1; n <= 4; n++ {
		imgui.BulletText(fmt.Sprintf("%d-line clears: %d", n, stats.Clears(n)))
	}
}
