// Command blockfall-bench plays many games with a random bot, headless and in
// simulated time, and prints a report of outcomes and loop timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mageise/gtd-any/internal/logging"
	"github.com/mageise/gtd-any/puzzle"
	"github.com/mageise/gtd-any/runner"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall time budget for the whole run.")
	games := flag.Int("games", 100, "Number of games to play; the run stops early when the duration is spent.")
	frame := flag.Duration("frame", 16*time.Millisecond, "Simulated time per step.")
	limit := flag.Duration("limit", 5*time.Minute, "Simulated time limit per game.")
	activity := flag.Float64("activity", 0.25, "Fraction of frames on which the bot presses a key.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	width := flag.Int("width", puzzle.DefaultWidth, "Board width.")
	height := flag.Int("height", puzzle.DefaultHeight, "Board height.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	level := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log := logging.Stderr(*level)
	log.Info().Int("games", *games).Dur("budget", *duration).Msg("starting bench")

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Frame:          *frame,
		Limit:          *limit,
		Activity:       *activity,
		Width:          *width,
		Height:         *height,
		GCPauseMetrics: *gcPauseMetrics,
		Outcomes:       newOutcomes(),
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	for i := range *games {
		if ctx.Err() != nil {
			log.Warn().Int("played", i).Msg("duration spent, stopping early")
			break
		}

		r := playGame(ctx, report, *seed+uint64(i), *frame, *limit, *activity, *width, *height)
		report.AddScheduler(r.Scheduler().GetStats())
		log.Debug().Int("game", i+1).Int("score", r.Session().Score()).Msg("game finished")
	}

	report.TotalTime = time.Since(startTime)
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int("played", report.Outcomes.Played).Msg("bench finished")

	fmt.Println("\n--- Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

// playGame runs one bot game to its end, or until ctx is done.
func playGame(ctx context.Context, report *Report, seed uint64, frame, limit time.Duration, activity float64, width, height int) *runner.Runner {
	r := runner.New(runner.Options{
		Session: puzzle.Options{
			Width:     width,
			Height:    height,
			Seed:      seed,
			TimeLimit: limit,
		},
		OnGameOver: report.Outcomes.Add,
	})
	bot := NewBot(seed, activity)

	r.Start()
	for ctx.Err() == nil {
		if intent, ok := bot.Act(); ok {
			r.Send(intent)
		}

		stepStart := time.Now()
		r.Step(frame)
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))
		report.TotalSteps++

		if r.Session().State() == puzzle.GameOver {
			report.Outcomes.AddStats(r.Session().Stats())
			break
		}
	}
	return r
}
