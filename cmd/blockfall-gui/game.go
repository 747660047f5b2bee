package main

import (
	"context"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mageise/gtd-any/debugui"
	debugui_ebiten "github.com/mageise/gtd-any/debugui/ebiten"
	"github.com/mageise/gtd-any/input"
	"github.com/mageise/gtd-any/internal/app"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/runner"
	"github.com/mageise/gtd-any/scoreboard"
)

const recordTimeout = 10 * time.Second

// Game implements ebiten.Game. Update and Draw run on the same goroutine, so
// the runner is stepped and read from one place.
type Game struct {
	app    *app.App
	runner *runner.Runner
	imgui  *debugui_ebiten.ImguiBackend
	perf   *debugui.PerformanceWindow
	timer  *debugui.FrameTimer
	layout layout

	snap    puzzle.Snapshot
	keys    map[ebiten.Key]string
	repeats map[ebiten.Key]*input.Repeat
	pointer input.LongPress
	touches []ebiten.TouchID
	touch   ebiten.TouchID

	leaders []scoreboard.Entry
	results chan []scoreboard.Entry
}

func newGame(a *app.App) *Game {
	g := &Game{
		app:     a,
		perf:    debugui.NewPerformanceWindow(240),
		timer:   debugui.NewFrameTimer(),
		layout:  newLayout(a.Config.Width, a.Config.Height, a.Settings.Scale),
		keys:    keyNames(),
		repeats: make(map[ebiten.Key]*input.Repeat),
		touch:   -1,
		results: make(chan []scoreboard.Entry, 1),
	}
	g.runner = a.NewRunner(runner.SinkFunc(g.render), g.gameOver)
	g.pull()
	return g
}

func keyNames() map[ebiten.Key]string {
	names := map[ebiten.Key]string{
		ebiten.KeyArrowLeft:  "left",
		ebiten.KeyArrowRight: "right",
		ebiten.KeyArrowDown:  "down",
		ebiten.KeyArrowUp:    "up",
		ebiten.KeySpace:      " ",
		ebiten.KeyEnter:      "enter",
		ebiten.KeyEscape:     "esc",
	}
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		names[k] = strings.ToLower(k.String())
	}
	return names
}

func (g *Game) render(snap puzzle.Snapshot) {
	g.snap = snap
}

// gameOver is called on the update goroutine. Recording may reach the network,
// so it runs in the background and hands the new leaderboard back.
func (g *Game) gameOver(snap puzzle.Snapshot) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		entries, err := g.app.Book.Record(ctx, snap, time.Now())
		if err != nil {
			g.app.Log.Error().Err(err).Msg("score not recorded")
			return
		}
		g.publish(entries)
	}()
}

func (g *Game) pull() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		entries, err := g.app.Book.Pull(ctx)
		if err != nil {
			g.app.Log.Warn().Err(err).Msg("leaderboard unavailable")
			return
		}
		g.publish(entries)
	}()
}

func (g *Game) publish(entries []scoreboard.Entry) {
	select {
	case <-g.results:
	default:
	}
	g.results <- entries
}

func (g *Game) Update() error {
	dt := g.timer.Delta()
	g.perf.Record(dt)

	// ImGui first so its buttons and capture state apply this frame
	g.imgui.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.imgui.Overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.app.Settings.Ghost = !g.app.Settings.Ghost
	}

	if !g.imgui.Overlay.Input.WantCaptureKeyboard {
		if quit := g.handleKeys(dt); quit {
			return ebiten.Termination
		}
	}
	if !g.imgui.Overlay.Input.WantCaptureMouse {
		g.handlePointer(time.Now())
	}

	select {
	case entries := <-g.results:
		g.leaders = entries
	default:
	}

	g.runner.Step(dt)
	return nil
}

// handleKeys maps pressed keys through the keymap. Movement and soft drop
// repeat while held; everything else fires once per press.
func (g *Game) handleKeys(dt time.Duration) (quit bool) {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	for key, name := range g.keys {
		pressed := inpututil.IsKeyJustPressed(key)
		if ctrl && name == "c" {
			name = "ctrl+c"
		}

		if control, ok := g.app.Keymap.Control(name); ok {
			if pressed && g.control(control) {
				return true
			}
			continue
		}

		intent, ok := g.app.Keymap.Intent(name)
		if !ok {
			continue
		}
		if !repeatable(intent) {
			if pressed {
				g.runner.Send(intent)
			}
			continue
		}

		r, ok := g.repeats[key]
		if !ok {
			r = input.NewRepeat()
			g.repeats[key] = r
		}
		for range r.Update(pressed, ebiten.IsKeyPressed(key), dt) {
			g.runner.Send(intent)
		}
	}
	return false
}

func repeatable(intent puzzle.Intent) bool {
	switch intent {
	case puzzle.MoveLeft, puzzle.MoveRight, puzzle.SoftDrop:
		return true
	}
	return false
}

func (g *Game) control(c input.Control) (quit bool) {
	switch c {
	case input.Start:
		g.runner.Start()
	case input.Pause:
		g.runner.TogglePause()
	case input.GiveUp:
		g.runner.GiveUp()
	case input.Quit:
		return true
	}
	return false
}

// handlePointer feeds the mouse, or the first touch, into the long-press
// tracker. Only presses that start over the board count.
func (g *Game) handlePointer(now time.Time) {
	x, pressed, released, ok := g.pointerEvent()
	if !ok {
		return
	}
	bx, width := g.layout.boardSpan()
	rel := float64(x) - bx

	if pressed && rel >= 0 && rel <= width {
		g.pointer.Press(rel, width, now)
	}
	if intent, ok := g.pointer.Poll(now); ok {
		g.runner.Send(intent)
	}
	if released && g.pointer.Held() {
		if intent, ok := g.pointer.Release(rel, width, now); ok {
			g.runner.Send(intent)
		}
	}
}

// pointerEvent reports the pointer x position and whether it went down or up
// this frame. ok is false when no pointer is in use.
func (g *Game) pointerEvent() (x int, pressed, released, ok bool) {
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	if g.touch < 0 && len(g.touches) > 0 {
		g.touch = g.touches[0]
		x, _ = ebiten.TouchPosition(g.touch)
		return x, true, false, true
	}
	if g.touch >= 0 {
		if inpututil.IsTouchJustReleased(g.touch) {
			x, _ = inpututil.TouchPositionInPreviousTick(g.touch)
			g.touch = -1
			return x, false, true, true
		}
		x, _ = ebiten.TouchPosition(g.touch)
		return x, false, false, true
	}

	x, _ = ebiten.CursorPosition()
	pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return x, pressed, released, true
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
