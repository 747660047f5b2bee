// Command blockfall plays the puzzle in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mageise/gtd-any/internal/app"
	"github.com/mageise/gtd-any/internal/config"
	"github.com/mageise/gtd-any/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "Optional dotenv file to load before the environment.")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log, closer, err := logging.File("blockfall.log", cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	a, err := app.Open(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	log.Info().Str("player", a.Settings.Player).Msg("blockfall start")
	program := tea.NewProgram(newModel(a), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("program error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
