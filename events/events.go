// Package events delivers engine lifecycle notifications to subscribed listeners.
//
// Delivery is synchronous: listeners run on the goroutine that publishes,
// in subscription order. A panicking listener is recovered and logged
// without affecting other listeners nor the publisher.
package events

import "fmt"

type Kind int

const (
	Play Kind = iota
	Pause
	Resume
	Loop
	Termination
	Completion
	Start
	FrameStart
	FrameEnd
)

func (k Kind) String() string {
	switch k {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Loop:
		return "loop"
	case Termination:
		return "termination"
	case Completion:
		return "completion"
	case Start:
		return "start"
	case FrameStart:
		return "frame_start"
	case FrameEnd:
		return "frame_end"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Cancelable reports whether listeners may cancel events of this kind.
func (k Kind) Cancelable() bool {
	return k == FrameStart
}

// Event is published by an engine (its Source) at a lifecycle point.
type Event struct {
	Kind   Kind
	Source any
	// only meaningful for cancelable kinds
	cancelled bool
}

func New(kind Kind, source any) *Event {
	return &Event{Kind: kind, Source: source}
}

// Cancel marks a FrameStart event as cancelled: the engine skips the state
// update of that frame. Returns false for kinds that can't be cancelled.
func (e *Event) Cancel() bool {
	if !e.Kind.Cancelable() {
		return false
	}
	e.cancelled = true
	return true
}

func (e *Event) Cancelled() bool {
	return e.cancelled
}
