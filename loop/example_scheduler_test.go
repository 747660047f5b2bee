package loop_test

import (
	"context"
	"fmt"
	"time"

	"github.com/mageise/gtd-any/loop"
)

type Countdown struct {
	Remaining time.Duration
}

func (c *Countdown) Execute(frame *loop.Frame) {
	c.Remaining -= frame.DeltaTime
	if c.Remaining <= 0 {
		c.Remaining = 0
		frame.Commands.Halt()
		frame.Commands.Defer(func() { fmt.Println("countdown finished") })
	}
}

// ExampleScheduler demonstrates a tick that halts itself. Commands queued by a
// system are applied once every system in the tick has run, so the deferred
// message prints after the reporter system.
func ExampleScheduler() {
	countdown := &Countdown{Remaining: 250 * time.Millisecond}

	scheduler := loop.NewScheduler()
	scheduler.Register(countdown)
	scheduler.Register(loop.Named("report", func(frame *loop.Frame) {
		fmt.Printf("tick %d: %v left\n", frame.Tick, countdown.Remaining)
	}))

	for scheduler.Once(100 * time.Millisecond) {
	}

	// Output:
	// tick 1: 150ms left
	// tick 2: 50ms left
	// tick 3: 0s left
	// countdown finished
}

// ExampleScheduler_Post demonstrates handing work to the loop goroutine.
// Posted work runs before the next tick and can resume a halted scheduler.
func ExampleScheduler_Post() {
	scheduler := loop.NewScheduler()
	scheduler.Halt()
	scheduler.Register(loop.Named("tick", func(frame *loop.Frame) {
		fmt.Println("ticked", frame.Tick)
	}))

	fmt.Println("halted:", scheduler.Once(time.Millisecond))

	scheduler.Post(func(frame *loop.Frame) {
		fmt.Println("resuming")
		frame.Commands.Resume()
	})
	fmt.Println("resumed:", scheduler.Once(time.Millisecond))

	// Output:
	// halted: false
	// resuming
	// ticked 1
	// resumed: true
}

// ExampleScheduler_Run demonstrates running a continuous loop. Run blocks,
// waiting the interval returned by the IntervalFunc between ticks, until the
// context is cancelled.
func ExampleScheduler_Run() {
	scheduler := loop.NewScheduler()
	scheduler.Register(loop.Named("noop", func(frame *loop.Frame) {}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, loop.Every(16*time.Millisecond))

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
