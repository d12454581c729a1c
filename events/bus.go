package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// process-wide bus used by engines created without an explicit one
	Default = NewBus()
)

type Listener func(e *Event)

// Filter selects the events a listener is interested in, nil accepts all
type Filter func(e *Event) bool

// FromSource filters events originating from source
func FromSource(source any) Filter {
	return func(e *Event) bool {
		return e.Source == source
	}
}

type Bus struct {
	sync.RWMutex
	// guarded by mutex, copied on write so that Publish iterates without locking
	subs   []*Subscription
	nextId uint64
}

type Subscription struct {
	id       uint64
	kind     Kind
	filter   Filter
	listener Listener
	bus      *Bus
	once     sync.Once
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers listener for events of the given kind accepted by filter.
// The returned subscription must be closed to release the listener.
func (b *Bus) Subscribe(kind Kind, filter Filter, listener Listener) *Subscription {
	b.Lock()
	defer b.Unlock()

	b.nextId++
	s := &Subscription{
		id:       b.nextId,
		kind:     kind,
		filter:   filter,
		listener: listener,
		bus:      b,
	}
	subs := make([]*Subscription, len(b.subs), len(b.subs)+1)
	copy(subs, b.subs)
	b.subs = append(subs, s)
	return s
}

func (b *Bus) unsubscribe(id uint64) {
	b.Lock()
	defer b.Unlock()

	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.id != id {
			subs = append(subs, s)
		}
	}
	b.subs = subs
}

// Publish delivers e to every matching listener on the calling goroutine
func (b *Bus) Publish(e *Event) {
	b.RLock()
	subs := b.subs
	b.RUnlock()

	for _, s := range subs {
		if s.kind != e.Kind {
			continue
		}
		if s.filter != nil && !s.filter(e) {
			continue
		}
		s.dispatch(e)
	}
}

// Len returns the number of open subscriptions
func (b *Bus) Len() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.subs)
}

func (s *Subscription) dispatch(e *Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("context", "bus").
				Str("kind", e.Kind.String()).
				Str("panic", fmt.Sprint(r)).
				Msg("listener_panicked")
		}
	}()
	s.listener(e)
}

// Close removes the listener from its bus, it is safe to call several times
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s.id)
	})
}

func (s *Subscription) Kind() Kind {
	return s.kind
}

// Group closes several subscriptions at once, typically those bound by the
// same owner
type Group []*Subscription

func (g Group) Close() {
	for _, s := range g {
		s.Close()
	}
}
