// Command blockfall-gui plays the puzzle in a desktop window, with an ImGui
// inspector on F1.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mageise/gtd-any/debugui"
	debugui_ebiten "github.com/mageise/gtd-any/debugui/ebiten"
	"github.com/mageise/gtd-any/internal/app"
	"github.com/mageise/gtd-any/internal/config"
	"github.com/mageise/gtd-any/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "Optional dotenv file to load before the environment.")
	inspect := flag.Bool("inspect", false, "Open the inspector on start.")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logging.Stderr(cfg.LogLevel)

	a, err := app.Open(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	game := newGame(a)

	overlay := debugui.NewOverlay(
		debugui.NewSessionWindow(game.runner),
		debugui.NewSchedulerWindow(game.runner.Scheduler()),
		game.perf,
	)
	overlay.Visible = *inspect

	w, h := game.layout.size()
	game.imgui = debugui_ebiten.NewImguiBackend("Blockfall", w, h, overlay)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info().Str("player", a.Settings.Player).Msg("window open")
	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("game stopped")
	}
	if err := a.SaveSettings(context.Background()); err != nil {
		log.Warn().Err(err).Msg("settings not saved")
	}
}
