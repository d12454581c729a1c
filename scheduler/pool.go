// Package scheduler runs recurring tasks at a fixed period on a shared pool
// of worker goroutines.
package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ducksouplab/motion/env"
	"github.com/rs/zerolog/log"
)

var (
	sharedOnce sync.Once
	shared     *Pool
)

// Shared returns the process-wide pool, sized by MOTION_WORKERS
func Shared() *Pool {
	sharedOnce.Do(func() {
		shared = NewPool(env.Workers)
	})
	return shared
}

type registration struct {
	task    Task
	handle  *Handle
	running atomic.Bool
}

// Pool executes registrations on a fixed set of workers. A given
// registration never runs concurrently with itself: when a period elapses
// while the previous invocation is still running, that tick is skipped.
type Pool struct {
	jobCh  chan *registration
	quitCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		jobCh:  make(chan *registration, workers*4),
		quitCh: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
	log.Info().Str("context", "scheduler").Int("workers", workers).Msg("pool_started")
	return p
}

func (p *Pool) runWorker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quitCh:
			return
		case r := <-p.jobCh:
			r.run()
		}
	}
}

func (r *registration) run() {
	defer r.running.Store(false)
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Str("context", "scheduler").
				Uint64("handle", r.handle.id).
				Str("panic", fmt.Sprint(err)).
				Str("stack", string(debug.Stack())).
				Msg("task_panicked")
		}
	}()
	if r.handle.Cancelled() {
		return
	}
	r.task()
}

// Schedule runs task every period, the first time after initialDelay.
// A non positive period is rejected: the returned handle is already cancelled.
func (p *Pool) Schedule(task Task, initialDelay, period time.Duration) *Handle {
	h := newHandle()
	if period <= 0 {
		log.Error().Str("context", "scheduler").Str("period", period.String()).Msg("invalid_period")
		h.Cancel()
		return h
	}
	r := &registration{task: task, handle: h}
	go p.runTimer(r, initialDelay, period)
	return h
}

func (p *Pool) runTimer(r *registration, initialDelay, period time.Duration) {
	if initialDelay > 0 {
		delay := time.NewTimer(initialDelay)
		select {
		case <-r.handle.Done():
			delay.Stop()
			return
		case <-p.quitCh:
			delay.Stop()
			return
		case <-delay.C:
		}
	}
	p.submit(r)

	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-r.handle.Done():
			return
		case <-p.quitCh:
			return
		case <-ticker.C:
			p.submit(r)
		}
	}
}

func (p *Pool) submit(r *registration) {
	// skip tick if previous invocation is still queued or running
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	select {
	case p.jobCh <- r:
	case <-r.handle.Done():
		r.running.Store(false)
	case <-p.quitCh:
		r.running.Store(false)
	}
}

// Shutdown stops every worker and timer, waiting for in-flight tasks to end
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.quitCh)
		p.wg.Wait()
		log.Info().Str("context", "scheduler").Msg("pool_stopped")
	})
}
