// Package loop drives a simulation on one goroutine: registered systems run in
// order on every tick, work posted from other goroutines runs between ticks,
// and commands queued during a tick take effect after the last system.
package loop

// System represents one step of a tick. Systems can keep their own state in
// struct fields; it persists between ticks.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to a System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

type namedSystem struct {
	name string
	fn   func(frame *Frame)
}

func (n namedSystem) Execute(frame *Frame) { n.fn(frame) }

// Named wraps fn as a System reported under name in scheduler stats.
func Named(name string, fn func(frame *Frame)) System {
	return namedSystem{name: name, fn: fn}
}
