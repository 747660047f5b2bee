// Package debugui provides Dear ImGui inspector windows for a running puzzle
// session: game state and controls, scheduler timings and frame times.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Window draws one ImGui window. Render is called once per frame between the
// backend's BeginFrame and EndFrame.
type Window interface {
	Render()
}

// WindowFunc adapts a function to a Window.
type WindowFunc func()

func (f WindowFunc) Render() { f() }

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Games should ignore their own input while it does.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders a set of windows every frame and can be hidden as a whole.
type Overlay struct {
	Visible bool
	Input   InputState

	windows []Window
}

// NewOverlay creates a visible overlay with the given windows.
func NewOverlay(windows ...Window) *Overlay {
	return &Overlay{Visible: true, windows: windows}
}

// Add appends a window.
func (o *Overlay) Add(w Window) {
	o.windows = append(o.windows, w)
}

// Toggle flips visibility.
func (o *Overlay) Toggle() { o.Visible = !o.Visible }

// Render updates the input capture state and draws every window.
func (o *Overlay) Render() {
	if !o.Visible {
		o.Input = InputState{}
		return
	}

	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, w := range o.windows {
		w.Render()
	}
}
