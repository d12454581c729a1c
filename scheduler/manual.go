package scheduler

import (
	"sync"
	"time"
)

// Manual holds registrations until Step is called, which makes tick
// sequences deterministic. Typical users are tests and hosts owning their
// own frame loop.
type Manual struct {
	sync.Mutex
	entries []*registration
}

func NewManual() *Manual {
	return &Manual{}
}

// Schedule records task, delay and period are ignored
func (m *Manual) Schedule(task Task, _, _ time.Duration) *Handle {
	m.Lock()
	defer m.Unlock()

	h := newHandle()
	m.entries = append(m.entries, &registration{task: task, handle: h})
	return h
}

// Step invokes every live registration once, on the calling goroutine, and
// returns the number of invocations
func (m *Manual) Step() int {
	m.Lock()
	live := m.entries[:0]
	for _, r := range m.entries {
		if !r.handle.Cancelled() {
			live = append(live, r)
		}
	}
	m.entries = live
	entries := make([]*registration, len(live))
	copy(entries, live)
	m.Unlock()

	count := 0
	for _, r := range entries {
		if r.handle.Cancelled() {
			continue
		}
		r.running.Store(true)
		r.run()
		count++
	}
	return count
}

// StepN calls Step n times and returns the total number of invocations
func (m *Manual) StepN(n int) int {
	count := 0
	for i := 0; i < n; i++ {
		count += m.Step()
	}
	return count
}

// Len returns the number of live registrations
func (m *Manual) Len() int {
	m.Lock()
	defer m.Unlock()

	count := 0
	for _, r := range m.entries {
		if !r.handle.Cancelled() {
			count++
		}
	}
	return count
}
