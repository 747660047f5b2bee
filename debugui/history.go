package debugui

import "time"

// History is a fixed-size ring of samples.
type History struct {
	samples []float32
	next    int
	filled  bool
}

// NewHistory creates a ring holding size samples.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

// Push records a sample, overwriting the oldest once full.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Len returns the number of samples recorded, up to the ring size.
func (h *History) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.next
}

// Ordered returns the recorded samples, oldest first.
func (h *History) Ordered() []float32 {
	if !h.filled {
		return append([]float32(nil), h.samples[:h.next]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Average returns the mean of the recorded samples.
func (h *History) Average() float32 {
	n := h.Len()
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

// MaxFrameDelta caps the delta FrameTimer reports after a stall.
const MaxFrameDelta = 250 * time.Millisecond

// FrameTimer measures the time between calls to Delta.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Delta returns the time since the previous call, or since creation, capped
// at MaxFrameDelta.
func (ft *FrameTimer) Delta() time.Duration {
	now := ft.now()
	delta := now.Sub(ft.last)
	ft.last = now
	return min(delta, MaxFrameDelta)
}
