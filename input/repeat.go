package input

import "time"

// Default auto-repeat timing for held movement keys.
const (
	DefaultRepeatDelay = 170 * time.Millisecond
	DefaultRepeatRate  = 50 * time.Millisecond
)

// Repeat turns a held key into repeated presses for front ends that report
// key state per frame rather than key events.
type Repeat struct {
	Delay time.Duration
	Rate  time.Duration

	held time.Duration
}

// NewRepeat creates a repeater with the default timing.
func NewRepeat() *Repeat {
	return &Repeat{Delay: DefaultRepeatDelay, Rate: DefaultRepeatRate}
}

// Update advances the repeater by one frame of dt and returns how many
// presses the frame produces, at most one. pressed reports a key that went
// down this frame, down one that is held. A long frame yields a single repeat
// and drops the backlog.
func (r *Repeat) Update(pressed, down bool, dt time.Duration) int {
	switch {
	case pressed:
		r.held = 0
		return 1
	case !down:
		r.held = 0
		return 0
	}

	r.held += dt
	if r.held <= r.Delay || r.Rate <= 0 {
		return 0
	}
	r.held = min(r.held-r.Rate, r.Delay)
	return 1
}
