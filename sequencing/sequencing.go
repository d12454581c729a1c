// Package sequencing animates values of any type over time.
//
// Two engines share the same scheduling and notification model:
//
//   - [Animation] advances a normalized progress in [0,1] by a fixed amount
//     on every tick and maps it to a value with a [Protocol].
//   - [Interpolation] moves a value toward a mutable target by a fixed
//     ratio on every tick with a [Blend].
//
// Engines register a periodic tick on a [Scheduler] (the shared
// [scheduler.Pool] by default) and publish lifecycle notifications on an
// [events.Bus] ([events.Default] by default). State is guarded by a
// per-instance lock: controls and accessors are safe to call from any
// goroutine, including from listeners.
package sequencing

import (
	"errors"
	"reflect"
	"time"

	"github.com/ducksouplab/motion/events"
	"github.com/ducksouplab/motion/scheduler"
)

var (
	ErrZeroDuration    = errors.New("duration must not be zero")
	ErrInvalidTimeUnit = errors.New("time unit must be a positive whole number of milliseconds")
	ErrInvalidRatio    = errors.New("ratio must be in [0,1]")
	ErrInvalidPeriod   = errors.New("period must be positive")
	ErrNilProtocol     = errors.New("protocol must not be nil")
)

// Slice is an opaque per-instance payload handed to the Protocol
type Slice any

// Scheduler registers periodic tasks, implemented by scheduler.Pool and
// scheduler.Manual
type Scheduler interface {
	Schedule(task scheduler.Task, initialDelay, period time.Duration) *scheduler.Handle
}

func orShared(s Scheduler) Scheduler {
	if s == nil {
		return scheduler.Shared()
	}
	return s
}

func orDefault(b *events.Bus) *events.Bus {
	if b == nil {
		return events.Default
	}
	return b
}

func validateTimeUnit(unit time.Duration) error {
	if unit < time.Millisecond || unit%time.Millisecond != 0 {
		return ErrInvalidTimeUnit
	}
	return nil
}

// isNil reports whether v holds a nil pointer, interface, map, slice, chan or func
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func live(h *scheduler.Handle) bool {
	return h != nil && !h.Cancelled()
}

func paused(h *scheduler.Handle) bool {
	return h != nil && h.Cancelled()
}
