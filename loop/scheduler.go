package loop

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// MinInterval is the shortest delay Run waits between ticks.
const MinInterval = time.Millisecond

// IntervalFunc returns the delay until the next tick. It is called on the
// loop goroutine after every tick and whenever ticking resumes.
type IntervalFunc func() time.Duration

// Every returns an IntervalFunc with a fixed period.
func Every(d time.Duration) IntervalFunc {
	return func() time.Duration { return d }
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	Posted          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes registered systems in order once per tick. All systems,
// posted work and deferred commands run on the goroutine that calls Run or
// Once, so the state they share needs no locking.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	running     bool
	tick        uint64
	posted      int64

	mu     sync.Mutex
	queue  []func(*Frame)
	wakeup chan struct{}
}

// NewScheduler creates a scheduler that ticks as soon as Run or Once is called.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems: make([]System, 0),
		wakeup:  make(chan struct{}, 1),
		running: true,
	}
}

// Register appends a system to the tick.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if n, ok := system.(namedSystem); ok {
		return n.name
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Post queues fn to run on the loop goroutine before the next tick. It is safe
// to call from any goroutine, including the loop goroutine itself, and never
// blocks. Posted work runs in the order it was queued.
func (s *Scheduler) Post(fn func(*Frame)) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

// Pending returns the number of posted functions waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Halt stops ticking until Resume. Call it before Run starts; from inside the
// loop use Frame.Commands instead.
func (s *Scheduler) Halt() { s.running = false }

// Resume re-enables ticking. Call it before Run starts; from inside the loop
// use Frame.Commands instead.
func (s *Scheduler) Resume() { s.running = true }

// Running reports whether ticks are currently enabled.
func (s *Scheduler) Running() bool { return s.running }

// Drain runs all queued posted work and reports whether any ran.
func (s *Scheduler) Drain() bool {
	ran := false
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			s.runPosted(fn)
		}
		ran = true
	}
}

func (s *Scheduler) runPosted(fn func(*Frame)) {
	frame := newFrame(s.tick, 0)
	fn(frame)
	s.posted++
	frame.Commands.flush(s)
}

// Once drains posted work and then, unless halted, executes every system once
// with the given delta time. It reports whether a tick ran.
func (s *Scheduler) Once(dt time.Duration) bool {
	s.Drain()
	if !s.running {
		return false
	}

	s.tick++
	frame := newFrame(s.tick, dt)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.flush(s)
	return true
}

// Run ticks until ctx is cancelled, waiting next() between ticks and running
// posted work as it arrives. While halted no tick fires; a halt issued during
// a tick or posted work takes effect before any further tick can run.
func (s *Scheduler) Run(ctx context.Context, next IntervalFunc) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	armed := false
	last := time.Now()
	arm := func() {
		timer.Reset(max(next(), MinInterval))
		armed = true
	}
	disarm := func() {
		timer.Stop()
		armed = false
	}

	if s.running {
		arm()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wakeup:
			wasRunning := s.running
			s.Drain()
			switch {
			case wasRunning && !s.running:
				disarm()
			case !wasRunning && s.running:
				last = time.Now()
				arm()
			}
		case now := <-timer.C:
			armed = false
			if !s.running {
				continue
			}
			dt := now.Sub(last)
			last = now
			s.Once(dt)
			if s.running && !armed {
				arm()
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Posted:      s.posted,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
