package input

import (
	"time"

	"github.com/mageise/gtd-any/puzzle"
)

// LongPressDelay is how long the middle zone must be held to soft-drop.
const LongPressDelay = 400 * time.Millisecond

// Zone is a vertical third of the play area.
type Zone int

const (
	ZoneLeft Zone = iota
	ZoneMiddle
	ZoneRight
)

// PointerZone returns the third of a play area width wide that x falls in.
// The middle third includes both of its edges.
func PointerZone(x, width float64) Zone {
	switch {
	case x < width/3:
		return ZoneLeft
	case x > width*2/3:
		return ZoneRight
	default:
		return ZoneMiddle
	}
}

// Intent returns the intent a tap in the zone performs.
func (z Zone) Intent() puzzle.Intent {
	switch z {
	case ZoneLeft:
		return puzzle.MoveLeft
	case ZoneRight:
		return puzzle.MoveRight
	default:
		return puzzle.Rotate
	}
}

// LongPress tracks one pointer. A press and release is a tap on the zone
// under the release point. Holding the middle zone for Delay soft-drops once
// and swallows the release.
type LongPress struct {
	Delay time.Duration

	down      bool
	fired     bool
	pressedAt time.Time
	zone      Zone
}

func (l *LongPress) delay() time.Duration {
	if l.Delay <= 0 {
		return LongPressDelay
	}
	return l.Delay
}

// Press starts tracking a pointer pressed at x.
func (l *LongPress) Press(x, width float64, now time.Time) {
	l.down = true
	l.fired = false
	l.pressedAt = now
	l.zone = PointerZone(x, width)
}

// Poll reports the soft drop of a long press, once, as soon as it is due.
func (l *LongPress) Poll(now time.Time) (puzzle.Intent, bool) {
	if !l.down || l.fired || l.zone != ZoneMiddle {
		return 0, false
	}
	if now.Sub(l.pressedAt) < l.delay() {
		return 0, false
	}
	l.fired = true
	return puzzle.SoftDrop, true
}

// Release ends tracking and returns the intent of the gesture, if any.
func (l *LongPress) Release(x, width float64, now time.Time) (puzzle.Intent, bool) {
	if !l.down {
		return 0, false
	}
	if intent, ok := l.Poll(now); ok {
		l.down = false
		return intent, true
	}
	l.down = false
	if l.fired {
		return 0, false
	}
	return PointerZone(x, width).Intent(), true
}

// Held reports whether a pointer is down.
func (l *LongPress) Held() bool { return l.down }
