package main

import (
	"context"
	"maps"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mageise/gtd-any/input"
	"github.com/mageise/gtd-any/internal/app"
	"github.com/mageise/gtd-any/internal/config"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/runner"
	"github.com/mageise/gtd-any/scoreboard"
)

type screen int

const (
	screenGame screen = iota
	screenScores
)

const (
	frameInterval = 33 * time.Millisecond
	syncTimeout   = 10 * time.Second
)

type frameMsg time.Time

type scoresMsg struct {
	entries []scoreboard.Entry
	err     error
}

type settingsSavedMsg struct {
	err error
}

// output collects what the runner hands back while Step runs. The model is
// copied on every update, so it holds a pointer to one shared output.
type output struct {
	snap     puzzle.Snapshot
	finished []puzzle.Snapshot
}

type model struct {
	app    *app.App
	runner *runner.Runner
	out    *output

	screen  screen
	width   int
	height  int
	last    time.Time
	scores  []scoreboard.Entry
	warning string
	syncing bool
}

func newModel(a *app.App) model {
	out := &output{}
	r := a.NewRunner(
		runner.SinkFunc(func(s puzzle.Snapshot) { out.snap = s }),
		func(s puzzle.Snapshot) { out.finished = append(out.finished, s) },
	)
	// Deliver the idle board before the first frame
	r.Step(0)

	return model{
		app:     a,
		runner:  r,
		out:     out,
		syncing: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), m.pullCmd())
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m model) pullCmd() tea.Cmd {
	book := m.app.Book
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		entries, err := book.Pull(ctx)
		return scoresMsg{entries: entries, err: err}
	}
}

func (m model) recordCmd(snap puzzle.Snapshot) tea.Cmd {
	book := m.app.Book
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		entries, err := book.Record(ctx, snap, time.Now())
		return scoresMsg{entries: entries, err: err}
	}
}

// saveSettingsCmd saves a copy of the current settings, since Update keeps
// changing m.app.Settings while the command runs.
func (m model) saveSettingsCmd() tea.Cmd {
	store := m.app.Store
	settings := m.app.Settings
	settings.Keys = maps.Clone(settings.Keys)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		return settingsSavedMsg{err: config.SaveSettings(ctx, store, settings)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		return m.step(time.Time(msg))
	case scoresMsg:
		m.syncing = false
		if msg.err != nil {
			m.app.Log.Error().Err(msg.err).Msg("leaderboard update failed")
			m.warning = "Leaderboard unavailable"
			return m, nil
		}
		m.warning = ""
		m.scores = msg.entries
		return m, nil
	case settingsSavedMsg:
		if msg.err != nil {
			m.app.Log.Warn().Err(msg.err).Msg("settings not saved")
		}
		return m, nil
	case tea.KeyMsg:
		if m.screen == screenScores {
			return m.updateScores(msg)
		}
		return m.updateGame(msg)
	}
	return m, nil
}

// step advances the runner by the wall time since the previous frame and
// records every game that finished during it.
func (m model) step(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Duration(0)
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now
	m.runner.Step(dt)

	cmds := []tea.Cmd{frameCmd()}
	for _, snap := range m.out.finished {
		m.syncing = true
		cmds = append(cmds, m.recordCmd(snap))
	}
	m.out.finished = m.out.finished[:0]
	return m, tea.Batch(cmds...)
}

func (m model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab":
		m.screen = screenScores
		return m, nil
	case "f2":
		m.app.Settings.Ghost = !m.app.Settings.Ghost
		return m, m.saveSettingsCmd()
	}

	if control, ok := m.app.Keymap.Control(key); ok {
		switch control {
		case input.Start:
			m.runner.Start()
		case input.Pause:
			m.runner.TogglePause()
		case input.GiveUp:
			m.runner.GiveUp()
		case input.Quit:
			return m, tea.Quit
		}
		return m, nil
	}
	if intent, ok := m.app.Keymap.Intent(key); ok {
		m.runner.Send(intent)
	}
	return m, nil
}

func (m model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "enter", "esc", "q":
		m.screen = screenGame
	case "ctrl+c":
		return m, tea.Quit
	case "u":
		m.syncing = true
		return m, m.pullCmd()
	}
	return m, nil
}

func (m model) View() string {
	if m.screen == screenScores {
		return viewScores(m)
	}
	return viewGame(m)
}
