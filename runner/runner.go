// Package runner drives a puzzle.Session from a loop.Scheduler. Gravity runs
// as a scheduler system, player input is posted into the scheduler queue, and
// the render sink is notified after every change, all on one goroutine.
package runner

import (
	"context"
	"time"

	"github.com/mageise/gtd-any/loop"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/rs/zerolog"
)

// Sink receives a snapshot after every state change. It is called on the loop
// goroutine and must not block.
type Sink interface {
	Render(snapshot puzzle.Snapshot)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(snapshot puzzle.Snapshot)

func (f SinkFunc) Render(snapshot puzzle.Snapshot) { f(snapshot) }

// Options configures a Runner.
type Options struct {
	Session puzzle.Options
	Sink    Sink

	// OnGameOver is called once per finished game with its final snapshot.
	OnGameOver func(snapshot puzzle.Snapshot)

	Logger *zerolog.Logger
}

// Runner owns a session and the scheduler that ticks it.
type Runner struct {
	session    *puzzle.Session
	scheduler  *loop.Scheduler
	sink       Sink
	onGameOver func(puzzle.Snapshot)
	log        zerolog.Logger

	paused bool
	games  int
}

// New creates a runner with an idle session. Nothing ticks until Start.
func New(opts Options) *Runner {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "runner").Logger()
	}

	r := &Runner{
		session:    puzzle.NewSession(opts.Session),
		scheduler:  loop.NewScheduler(),
		sink:       opts.Sink,
		onGameOver: opts.OnGameOver,
		log:        log,
	}
	r.scheduler.Halt()
	r.scheduler.Register(&GravitySystem{runner: r})
	r.scheduler.Post(func(frame *loop.Frame) {
		frame.Commands.Defer(r.present)
	})
	return r
}

// GravitySystem advances the session by the frame's delta time and ends the
// tick when the game is over.
type GravitySystem struct {
	runner *Runner
}

func (g *GravitySystem) Execute(frame *loop.Frame) {
	r := g.runner
	if r.session.State() != puzzle.Playing {
		frame.Commands.Halt()
		return
	}
	if ticks := r.session.Advance(frame.DeltaTime); ticks > 0 {
		r.log.Trace().Int("ticks", ticks).Uint64("frame", frame.Tick).Msg("gravity")
	}
	r.afterChange(frame)
}

// afterChange queues the render notification and halts the scheduler once the
// session has left Playing.
func (r *Runner) afterChange(frame *loop.Frame) {
	frame.Commands.Defer(r.present)
	if r.session.State() == puzzle.GameOver {
		frame.Commands.Halt()
		frame.Commands.Defer(r.finished)
	}
}

func (r *Runner) present() {
	if r.sink != nil {
		r.sink.Render(r.session.Snapshot())
	}
}

func (r *Runner) finished() {
	snap := r.session.Snapshot()
	r.log.Info().
		Str("reason", string(snap.Reason)).
		Int("score", snap.Score).
		Int("lines", snap.Lines).
		Int("level", snap.Level).
		Dur("elapsed", snap.Elapsed).
		Bool("new_best", snap.NewBest).
		Msg("game over")
	if r.onGameOver != nil {
		r.onGameOver(snap)
	}
}

// Start begins a game, or restarts a finished one. It does nothing while a
// game is being played.
func (r *Runner) Start() {
	r.scheduler.Post(func(frame *loop.Frame) {
		if r.session.State() == puzzle.Playing {
			return
		}
		r.session.Start()
		r.paused = false
		r.games++
		r.log.Debug().Int("game", r.games).Msg("game started")
		frame.Commands.Resume()
		r.afterChange(frame)
	})
}

// Send applies a player intent before the next tick. Intents do not move the
// gravity timer.
func (r *Runner) Send(intent puzzle.Intent) {
	r.scheduler.Post(func(frame *loop.Frame) {
		if r.paused {
			return
		}
		if !r.session.Apply(intent) {
			return
		}
		r.afterChange(frame)
	})
}

// GiveUp ends the current game as if it had topped out.
func (r *Runner) GiveUp() {
	r.scheduler.Post(func(frame *loop.Frame) {
		if r.session.State() != puzzle.Playing {
			return
		}
		r.session.GiveUp()
		r.paused = false
		r.afterChange(frame)
	})
}

// Pause stops gravity and ignores intents without leaving Playing. Paused time
// does not count toward the game clock.
func (r *Runner) Pause() {
	r.scheduler.Post(func(frame *loop.Frame) {
		if r.session.State() != puzzle.Playing || r.paused {
			return
		}
		r.paused = true
		r.log.Debug().Msg("paused")
		frame.Commands.Halt()
		frame.Commands.Defer(r.present)
	})
}

// Unpause resumes a paused game.
func (r *Runner) Unpause() {
	r.scheduler.Post(func(frame *loop.Frame) {
		if !r.paused {
			return
		}
		r.paused = false
		r.log.Debug().Msg("resumed")
		if r.session.State() == puzzle.Playing {
			frame.Commands.Resume()
		}
		frame.Commands.Defer(r.present)
	})
}

// TogglePause pauses a running game or resumes a paused one.
func (r *Runner) TogglePause() {
	r.scheduler.Post(func(frame *loop.Frame) {
		if r.paused {
			r.paused = false
			if r.session.State() == puzzle.Playing {
				frame.Commands.Resume()
			}
		} else if r.session.State() == puzzle.Playing {
			r.paused = true
			frame.Commands.Halt()
		}
		frame.Commands.Defer(r.present)
	})
}

// Run ticks the session in real time until ctx is cancelled. The wait between
// ticks follows the session's drop interval.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Debug().Msg("loop started")
	err := r.scheduler.Run(ctx, r.session.UntilNextTick)
	r.log.Debug().Err(err).Msg("loop stopped")
	return err
}

// Step runs posted work and, unless halted, one tick of dt. Front ends that own
// their frame loop call it instead of Run, from a single goroutine.
func (r *Runner) Step(dt time.Duration) bool {
	return r.scheduler.Once(dt)
}

// Session returns the driven session. It must only be read from the goroutine
// that calls Run or Step, for example from inside a Sink.
func (r *Runner) Session() *puzzle.Session { return r.session }

// Scheduler returns the scheduler, for inspection.
func (r *Runner) Scheduler() *loop.Scheduler { return r.scheduler }

// Paused reports whether the current game is paused. Same goroutine rules as
// Session apply.
func (r *Runner) Paused() bool { return r.paused }

// Games returns how many games have been started.
func (r *Runner) Games() int { return r.games }
