package events

import (
	"testing"
)

type source struct{ name string }

func TestBus(t *testing.T) {

	t.Run("Deliver in subscription order", func(t *testing.T) {
		bus := NewBus()
		src := &source{"a"}
		var order []int
		bus.Subscribe(Play, FromSource(src), func(*Event) { order = append(order, 1) })
		bus.Subscribe(Play, FromSource(src), func(*Event) { order = append(order, 2) })

		bus.Publish(New(Play, src))

		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("unexpected delivery order %v", order)
		}
	})

	t.Run("Filter on kind and source", func(t *testing.T) {
		bus := NewBus()
		a, b := &source{"a"}, &source{"b"}
		count := 0
		bus.Subscribe(Pause, FromSource(a), func(*Event) { count++ })

		bus.Publish(New(Pause, b))
		bus.Publish(New(Resume, a))
		bus.Publish(New(Pause, a))

		if count != 1 {
			t.Errorf("got %d deliveries but expected 1", count)
		}
	})

	t.Run("Close subscription", func(t *testing.T) {
		bus := NewBus()
		count := 0
		sub := bus.Subscribe(Loop, nil, func(*Event) { count++ })
		bus.Publish(New(Loop, nil))
		sub.Close()
		sub.Close()
		bus.Publish(New(Loop, nil))

		if count != 1 {
			t.Errorf("got %d deliveries but expected 1", count)
		}
		if bus.Len() != 0 {
			t.Errorf("bus should be empty, has %d subscriptions", bus.Len())
		}
	})

	t.Run("Isolate panicking listeners", func(t *testing.T) {
		bus := NewBus()
		reached := false
		bus.Subscribe(FrameEnd, nil, func(*Event) { panic("boom") })
		bus.Subscribe(FrameEnd, nil, func(*Event) { reached = true })

		bus.Publish(New(FrameEnd, nil))

		if !reached {
			t.Error("second listener should run after first one panicked")
		}
	})

	t.Run("Unsubscribe during dispatch", func(t *testing.T) {
		bus := NewBus()
		count := 0
		var sub *Subscription
		sub = bus.Subscribe(Play, nil, func(*Event) {
			count++
			sub.Close()
		})
		bus.Publish(New(Play, nil))
		bus.Publish(New(Play, nil))

		if count != 1 {
			t.Errorf("got %d deliveries but expected 1", count)
		}
	})

	t.Run("Group close", func(t *testing.T) {
		bus := NewBus()
		g := Group{
			bus.Subscribe(Play, nil, func(*Event) {}),
			bus.Subscribe(Pause, nil, func(*Event) {}),
		}
		g.Close()
		if bus.Len() != 0 {
			t.Errorf("bus should be empty, has %d subscriptions", bus.Len())
		}
	})
}

func TestEventCancel(t *testing.T) {
	if !New(FrameStart, nil).Cancel() {
		t.Error("frame start should be cancelable")
	}
	e := New(FrameEnd, nil)
	if e.Cancel() || e.Cancelled() {
		t.Error("frame end should not be cancelable")
	}
	if New(Start, nil).Cancel() || Start.String() != "start" {
		t.Error("start should be named and not cancelable")
	}
	if Kind(99).String() != "Kind(99)" {
		t.Error("unexpected unknown kind representation")
	}
}
