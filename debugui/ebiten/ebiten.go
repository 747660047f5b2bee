// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mageise/gtd-any/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and draws a debugui.Overlay on top of the game.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the backend window and disables imgui.ini.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend, Overlay: overlay}
}

// Update runs one ImGui frame with the overlay's windows. Call it from the
// game's Update.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.Overlay.Render()
	b.EndFrame()
}

// DrawOverlay draws the ImGui frame onto screen when the overlay is visible.
func (b *ImguiBackend) DrawOverlay(screen *ebiten.Image) {
	if !b.Overlay.Visible {
		return
	}
	b.Draw(screen)
}
