package loop

// Commands buffers work that must happen after every system of a tick has
// run: deferred calls such as notifying a renderer, and halting or resuming
// the tick timer.
type Commands struct {
	defers []func()
	halt   bool
	resume bool
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed, in queue order.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Halt stops future ticks once the frame is flushed. Posted work still runs.
func (c *Commands) Halt() {
	c.halt = true
	c.resume = false
}

// Resume re-arms the tick timer once the frame is flushed.
func (c *Commands) Resume() {
	c.resume = true
	c.halt = false
}

// flush runs deferred calls and applies halt/resume to the scheduler,
// resetting the buffer state.
func (c *Commands) flush(s *Scheduler) {
	for _, fn := range c.defers {
		fn()
	}

	switch {
	case c.halt:
		s.running = false
	case c.resume:
		s.running = true
	}

	c.defers = c.defers[:0]
	c.halt = false
	c.resume = false
}
