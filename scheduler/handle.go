package scheduler

import (
	"sync"
	"sync/atomic"
)

// Task is invoked repeatedly by a scheduler
type Task func()

// Handle represents a live periodic registration
type Handle struct {
	id        uint64
	cancelled atomic.Bool
	doneCh    chan struct{}
	once      sync.Once
}

var handleCount atomic.Uint64

func newHandle() *Handle {
	return &Handle{
		id:     handleCount.Add(1),
		doneCh: make(chan struct{}),
	}
}

// Cancel stops future invocations. An invocation already in flight is not
// interrupted. Returns false if the handle was already cancelled.
func (h *Handle) Cancel() bool {
	cancelled := false
	h.once.Do(func() {
		h.cancelled.Store(true)
		close(h.doneCh)
		cancelled = true
	})
	return cancelled
}

func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Done is closed on cancellation
func (h *Handle) Done() <-chan struct{} {
	return h.doneCh
}

func (h *Handle) ID() uint64 {
	return h.id
}
