package sequencing

import (
	"fmt"
	"image/color"
	"reflect"
	"sync"
	"time"

	"github.com/ducksouplab/motion/events"
	"github.com/ducksouplab/motion/helpers"
	"github.com/ducksouplab/motion/scheduler"
	"github.com/ducksouplab/motion/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultInterpolationPeriod = time.Millisecond
)

// Blend computes the next value on the way to target
type Blend[I any] func(value, target I, ratio float64) I

// Equal decides whether value has reached target
type Equal[I any] func(value, target I) bool

// LinearBlend moves value by ratio of the remaining distance
func LinearBlend(value, target, ratio float64) float64 {
	return helpers.Lerp(value, target, ratio)
}

func VectorBlend(value, target types.Vector, ratio float64) types.Vector {
	return value.Lerp(target, ratio)
}

func BoxBlend(value, target types.Box, ratio float64) types.Box {
	return value.Lerp(target, ratio)
}

// ColorBlend rounds channels, so Equal is exact once within half a unit
func ColorBlend(value, target color.RGBA, ratio float64) color.RGBA {
	return types.LerpColor(value, target, ratio)
}

// InterpolationConfig gathers construction parameters. Nil Equal defaults
// to reflect.DeepEqual, zero Period to DefaultInterpolationPeriod.
type InterpolationConfig[I any] struct {
	Initial   I
	Ratio     float64
	Blend     Blend[I]
	Equal     Equal[I]
	Period    time.Duration
	Scheduler Scheduler
	Bus       *events.Bus
}

// Interpolation converges toward its target, blending every tick by Ratio.
// It starts ticking when its first target is set and keeps ticking until
// paused or terminated.
type Interpolation[I any] struct {
	// guarded by mutex
	mu        sync.RWMutex
	value     I
	last      I
	target    I
	ratio     float64
	available bool
	started   bool
	completed bool
	handle    *scheduler.Handle
	starting  bool
	run       uint64
	// written only during initialization
	id        string
	blend     Blend[I]
	equal     Equal[I]
	period    time.Duration
	scheduler Scheduler
	bus       *events.Bus
	logger    zerolog.Logger
}

func validateRatio(ratio float64) error {
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}
	return nil
}

func NewInterpolation[I any](c InterpolationConfig[I]) (*Interpolation[I], error) {
	if c.Blend == nil {
		return nil, ErrNilProtocol
	}
	if err := validateRatio(c.Ratio); err != nil {
		return nil, err
	}
	if c.Equal == nil {
		c.Equal = func(value, target I) bool { return reflect.DeepEqual(value, target) }
	}
	if c.Period == 0 {
		c.Period = DefaultInterpolationPeriod
	}
	if c.Period < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, c.Period)
	}

	id := uuid.New().String()
	return &Interpolation[I]{
		value:     c.Initial,
		last:      c.Initial,
		target:    c.Initial,
		ratio:     c.Ratio,
		id:        id,
		blend:     c.Blend,
		equal:     c.Equal,
		period:    c.Period,
		scheduler: orShared(c.Scheduler),
		bus:       orDefault(c.Bus),
		logger: log.With().
			Str("context", "interpolation").
			Str("interpolation", id).
			Logger(),
	}, nil
}

// NewFloat64Interpolation blends linearly and completes within helpers.Epsilon
func NewFloat64Interpolation(initial, ratio float64) (*Interpolation[float64], error) {
	return NewInterpolation(InterpolationConfig[float64]{
		Initial: initial,
		Ratio:   ratio,
		Blend:   LinearBlend,
		Equal:   helpers.LooseEquals,
	})
}

func NewVectorInterpolation(initial types.Vector, ratio float64) (*Interpolation[types.Vector], error) {
	return NewInterpolation(InterpolationConfig[types.Vector]{
		Initial: initial,
		Ratio:   ratio,
		Blend:   VectorBlend,
		Equal:   types.Vector.LooseEquals,
	})
}

func NewBoxInterpolation(initial types.Box, ratio float64) (*Interpolation[types.Box], error) {
	return NewInterpolation(InterpolationConfig[types.Box]{
		Initial: initial,
		Ratio:   ratio,
		Blend:   BoxBlend,
		Equal:   types.Box.LooseEquals,
	})
}

func NewColorInterpolation(initial color.RGBA, ratio float64) (*Interpolation[color.RGBA], error) {
	return NewInterpolation(InterpolationConfig[color.RGBA]{
		Initial: initial,
		Ratio:   ratio,
		Blend:   ColorBlend,
	})
}

// private

func (i *Interpolation[I]) publish(kind events.Kind) *events.Event {
	e := events.New(kind, i)
	i.bus.Publish(e)
	return e
}

func (i *Interpolation[I]) register() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.starting = false
	i.run++
	run := i.run
	i.handle = i.scheduler.Schedule(func() { i.tick(run) }, 0, i.period)
}

func (i *Interpolation[I]) isCurrent(run uint64) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.available && i.run == run && live(i.handle)
}

func (i *Interpolation[I]) tick(run uint64) {
	if !i.isCurrent(run) {
		return
	}
	if start := i.publish(events.FrameStart); !start.Cancelled() {
		i.frame(run)
	}
	i.publish(events.FrameEnd)
}

func (i *Interpolation[I]) frame(run uint64) {
	i.mu.Lock()
	if i.run != run {
		i.mu.Unlock()
		return
	}
	// Start and Completion fire once per approach
	left, reached := false, false
	if i.equal(i.value, i.target) {
		i.started = false
		if !i.completed {
			i.completed = true
			reached = true
		}
	} else {
		i.completed = false
		if !i.started {
			i.started = true
			left = true
		}
	}
	i.mu.Unlock()

	if left {
		i.publish(events.Start)
		i.logger.Trace().Msg("interpolation_started")
	}
	if reached {
		i.publish(events.Completion)
		i.logger.Trace().Msg("interpolation_completed")
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.run == run && !isNil(i.value) && !isNil(i.target) {
		i.last = i.value
		i.value = i.blend(i.value, i.target, i.ratio)
	}
}

// play registers without notification, only SetTarget triggers it
func (i *Interpolation[I]) play() {
	i.register()
	i.logger.Debug().Msg("interpolation_played")
}

// API read

func (i *Interpolation[I]) ID() string {
	return i.id
}

func (i *Interpolation[I]) Value() I {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

// Last is the value before the latest tick
func (i *Interpolation[I]) Last() I {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.last
}

func (i *Interpolation[I]) Target() I {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.target
}

func (i *Interpolation[I]) Ratio() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ratio
}

func (i *Interpolation[I]) IsAvailable() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.available
}

func (i *Interpolation[I]) IsPlaying() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return live(i.handle)
}

func (i *Interpolation[I]) IsPaused() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return paused(i.handle)
}

func (i *Interpolation[I]) IsCompleted() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.equal(i.value, i.target)
}

// Inspect implements types.Inspectable
func (i *Interpolation[I]) Inspect() types.Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return types.Snapshot{
		ID:        i.id,
		Kind:      "interpolation",
		Playing:   live(i.handle),
		Paused:    paused(i.handle),
		Completed: i.equal(i.value, i.target),
		Value:     fmt.Sprint(i.value),
		Target:    fmt.Sprint(i.target),
		Ratio:     i.ratio,
	}
}

// API write

// SetTarget changes the destination. The first target makes the
// interpolation available and starts ticking.
func (i *Interpolation[I]) SetTarget(target I) {
	i.mu.Lock()
	i.target = target
	first := !i.available
	i.available = true
	i.mu.Unlock()

	if first {
		i.play()
	}
}

// Reset jumps to value, bypassing convergence
func (i *Interpolation[I]) Reset(value I) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = value
	i.last = value
}

func (i *Interpolation[I]) SetRatio(ratio float64) error {
	if err := validateRatio(ratio); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ratio = ratio
	return nil
}

// API control

func (i *Interpolation[I]) Pause() {
	i.mu.Lock()
	if !live(i.handle) {
		i.mu.Unlock()
		return
	}
	i.run++
	i.handle.Cancel()
	i.mu.Unlock()

	i.publish(events.Pause)
	i.logger.Debug().Msg("interpolation_paused")
}

func (i *Interpolation[I]) Resume() {
	i.mu.Lock()
	if !paused(i.handle) || i.starting {
		i.mu.Unlock()
		return
	}
	i.starting = true
	i.mu.Unlock()

	i.publish(events.Resume)
	i.register()
	i.logger.Debug().Msg("interpolation_resumed")
}

func (i *Interpolation[I]) PauseOrResume() {
	if i.IsPaused() {
		i.Resume()
	} else {
		i.Pause()
	}
}

// Terminate pauses and releases the registration. A later SetTarget does
// not restart ticking, Resume is not possible either.
func (i *Interpolation[I]) Terminate() {
	i.Pause()

	i.mu.Lock()
	defer i.mu.Unlock()
	i.handle = nil
}

// API listeners, subscriptions are released with Close

func (i *Interpolation[I]) on(kind events.Kind, listener func()) *events.Subscription {
	return i.bus.Subscribe(kind, events.FromSource(i), func(*events.Event) { listener() })
}

// OnStart fires on the first frame of every approach, when the value leaves
// its target
func (i *Interpolation[I]) OnStart(listener func()) *events.Subscription {
	return i.on(events.Start, listener)
}

func (i *Interpolation[I]) OnCompletion(listener func()) *events.Subscription {
	return i.on(events.Completion, listener)
}

func (i *Interpolation[I]) OnPause(listener func()) *events.Subscription {
	return i.on(events.Pause, listener)
}

func (i *Interpolation[I]) OnResume(listener func()) *events.Subscription {
	return i.on(events.Resume, listener)
}

// OnFrameStart listeners receive the event and may cancel the frame
func (i *Interpolation[I]) OnFrameStart(listener func(e *events.Event)) *events.Subscription {
	return i.bus.Subscribe(events.FrameStart, events.FromSource(i), listener)
}

func (i *Interpolation[I]) OnFrameEnd(listener func()) *events.Subscription {
	return i.on(events.FrameEnd, listener)
}
