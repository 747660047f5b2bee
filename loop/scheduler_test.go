package loop_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mageise/gtd-any/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CountingSystem struct {
	ExecuteCount int
	Elapsed      time.Duration
	order        *[]string
}

func (s *CountingSystem) Execute(frame *loop.Frame) {
	s.ExecuteCount++
	s.Elapsed += frame.DeltaTime
	if s.order != nil {
		*s.order = append(*s.order, "counting")
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var order []string

		scheduler.Register(&CountingSystem{order: &order})
		scheduler.Register(loop.Named("second", func(frame *loop.Frame) {
			order = append(order, "second")
		}))
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			order = append(order, "third")
		}))

		assert.True(t, scheduler.Once(time.Second))
		assert.Equal(t, []string{"counting", "second", "third"}, order)
	})

	t.Run("custom state persistence", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		counting := &CountingSystem{}
		scheduler.Register(counting)

		scheduler.Once(500 * time.Millisecond)
		scheduler.Once(250 * time.Millisecond)

		assert.Equal(t, 2, counting.ExecuteCount)
		assert.Equal(t, 750*time.Millisecond, counting.Elapsed)
	})

	t.Run("deferred commands run after every system", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var order []string

		scheduler.Register(loop.Named("first", func(frame *loop.Frame) {
			frame.Commands.Defer(func() { order = append(order, "deferred") })
			order = append(order, "first")
		}))
		scheduler.Register(loop.Named("second", func(frame *loop.Frame) {
			order = append(order, "second")
		}))

		scheduler.Once(0)

		assert.Equal(t, []string{"first", "second", "deferred"}, order)
	})

	t.Run("halt stops later ticks", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		counting := &CountingSystem{}
		scheduler.Register(counting)
		scheduler.Register(loop.Named("halter", func(frame *loop.Frame) {
			frame.Commands.Halt()
		}))

		assert.True(t, scheduler.Once(time.Millisecond))
		assert.False(t, scheduler.Running())
		assert.False(t, scheduler.Once(time.Millisecond))
		assert.Equal(t, 1, counting.ExecuteCount)
	})

	t.Run("posted work runs before the tick", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		scheduler.Halt()
		counting := &CountingSystem{}
		scheduler.Register(counting)

		scheduler.Post(func(frame *loop.Frame) {
			frame.Commands.Resume()
		})

		assert.True(t, scheduler.Once(time.Millisecond))
		assert.Equal(t, 1, counting.ExecuteCount)
		assert.Equal(t, int64(1), scheduler.GetStats().Posted)
	})

	t.Run("tick numbers", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var ticks []uint64
		scheduler.Register(loop.Named("ticks", func(frame *loop.Frame) {
			ticks = append(ticks, frame.Tick)
		}))

		scheduler.Once(0)
		scheduler.Once(0)
		var postedTick uint64
		scheduler.Post(func(frame *loop.Frame) { postedTick = frame.Tick })
		scheduler.Drain()

		assert.Equal(t, []uint64{1, 2}, ticks)
		assert.Equal(t, uint64(2), postedTick)
	})
}

func TestSchedulerPostDoesNotBlock(t *testing.T) {
	scheduler := loop.NewScheduler()
	var order []int
	for i := range 500 {
		scheduler.Post(func(frame *loop.Frame) { order = append(order, i) })
	}
	assert.Equal(t, 500, scheduler.Pending())

	scheduler.Post(func(frame *loop.Frame) {
		order = append(order, -1)
		// Work posted from posted work runs in the same drain.
		scheduler.Post(func(frame *loop.Frame) { order = append(order, -2) })
	})

	require.True(t, scheduler.Drain())
	require.Len(t, order, 502)
	for i := range 500 {
		assert.Equal(t, i, order[i])
	}
	assert.Equal(t, []int{-1, -2}, order[500:])
	assert.Zero(t, scheduler.Pending())
	assert.Equal(t, int64(502), scheduler.GetStats().Posted)
}

func TestSchedulerRun(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var count atomic.Int64
		scheduler.Register(loop.Named("count", func(frame *loop.Frame) { count.Add(1) }))

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error)
		go func() {
			done <- scheduler.Run(ctx, loop.Every(time.Millisecond))
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.Positive(t, count.Load())
	})

	t.Run("no tick fires after halt", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var count atomic.Int64
		scheduler.Register(loop.Named("halt-on-third", func(frame *loop.Frame) {
			if count.Add(1) == 3 {
				frame.Commands.Halt()
			}
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = scheduler.Run(ctx, loop.Every(time.Millisecond))
			close(done)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()
		<-done

		assert.Equal(t, int64(3), count.Load())
	})

	t.Run("posted halt disarms a pending tick", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var count atomic.Int64
		scheduler.Register(loop.Named("count", func(frame *loop.Frame) { count.Add(1) }))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = scheduler.Run(ctx, loop.Every(30*time.Millisecond))
			close(done)
		}()

		halted := make(chan struct{})
		scheduler.Post(func(frame *loop.Frame) {
			frame.Commands.Halt()
			close(halted)
		})
		<-halted

		time.Sleep(80 * time.Millisecond)
		cancel()
		<-done

		assert.Zero(t, count.Load())
	})

	t.Run("resume from posted work", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		scheduler.Halt()
		ticked := make(chan struct{}, 1)
		scheduler.Register(loop.Named("signal", func(frame *loop.Frame) {
			select {
			case ticked <- struct{}{}:
			default:
			}
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = scheduler.Run(ctx, loop.Every(time.Millisecond)) }()

		scheduler.Post(func(frame *loop.Frame) { frame.Commands.Resume() })

		select {
		case <-ticked:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not tick after resume")
		}
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler()
	scheduler.Register(&CountingSystem{})
	scheduler.Register(loop.Named("sleepy", func(frame *loop.Frame) {
		time.Sleep(time.Millisecond)
	}))

	for range 3 {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(3), stats.Ticks)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "CountingSystem", stats.Systems[0].Name)
	assert.Equal(t, "sleepy", stats.Systems[1].Name)
	assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[1].MinDuration, time.Millisecond)
	assert.GreaterOrEqual(t, stats.Systems[1].MaxDuration, stats.Systems[1].AvgDuration)
}
