package loop

import "time"

// Frame is passed to every system during a tick, and to posted work.
type Frame struct {
	// Tick counts executed ticks, starting at 1. Posted work sees the tick
	// that ran last.
	Tick      uint64
	DeltaTime time.Duration
	Commands  *Commands
}

func newFrame(tick uint64, dt time.Duration) *Frame {
	return &Frame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
	}
}
