package sequencing

import (
	"fmt"
	"math"
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

type values[A any] struct {
	start    A
	end      A
	progress float64
}

func newValues[A any](start, end A, progress float64) values[A] {
	return values[A]{start, end, helpers.Clamp(progress, 0, 1)}
}

type frequency struct {
	speed    float64
	duration time.Duration
	unit     time.Duration
}

func newFrequency(speed float64, duration, unit time.Duration) frequency {
	if duration < 0 {
		duration = -duration
	}
	return frequency{speed, duration, unit}
}

// in milliseconds
func (f frequency) period() int64 {
	return f.unit.Milliseconds()
}

func (f frequency) accumulation() float64 {
	return float64(f.period()) * f.speed
}

func (f frequency) step() float64 {
	return f.accumulation() / (float64(f.duration) / float64(time.Millisecond))
}

type states struct {
	slice     Slice
	sensitive bool
	looping   bool
	handle    *scheduler.Handle
	// set while Play or Resume publish before registering
	starting bool
	// bumped on every (un)registration, ticks from previous runs are ignored
	run uint64
}

// AnimationConfig gathers construction parameters. Zero Speed defaults to 1,
// zero TimeUnit to time.Millisecond, nil Scheduler to scheduler.Shared() and
// nil Bus to events.Default.
type AnimationConfig[A any] struct {
	Start     A
	End       A
	Speed     float64
	Duration  time.Duration
	TimeUnit  time.Duration
	Sensitive bool
	Looping   bool
	Slice     Slice
	Scheduler Scheduler
	Bus       *events.Bus
}

// Animation moves progress from 0 to 1 (or 1 to 0 with a negative speed)
// over Duration, advancing every TimeUnit by TimeUnit*Speed/Duration.
//
// Call Terminate when done, otherwise the scheduler keeps a registration
// referencing the animation.
type Animation[A any] struct {
	// guarded by mutex
	mu        sync.RWMutex
	values    values[A]
	frequency frequency
	states    states
	// written only during initialization
	id        string
	protocol  Protocol[A]
	clamped   Protocol[A]
	scheduler Scheduler
	bus       *events.Bus
	logger    zerolog.Logger
}

// NewAnimation fails fast on configuration errors, before any scheduling.
// When clamped is nil, protocol is used with progress clamped to [0,1].
func NewAnimation[A any](protocol, clamped Protocol[A], c AnimationConfig[A]) (*Animation[A], error) {
	if protocol == nil {
		return nil, ErrNilProtocol
	}
	if clamped == nil {
		clamped = NewAny(protocol).clamped
	}
	if c.Duration == 0 {
		return nil, ErrZeroDuration
	}
	if c.TimeUnit == 0 {
		c.TimeUnit = time.Millisecond
	}
	if err := validateTimeUnit(c.TimeUnit); err != nil {
		return nil, fmt.Errorf("%w: %v", err, c.TimeUnit)
	}
	if c.Speed == 0 {
		c.Speed = 1
	}

	id := uuid.New().String()
	a := &Animation[A]{
		values:    newValues(c.Start, c.End, 0),
		frequency: newFrequency(c.Speed, c.Duration, c.TimeUnit),
		states:    states{slice: c.Slice, sensitive: c.Sensitive, looping: c.Looping},
		id:        id,
		protocol:  protocol,
		clamped:   clamped,
		scheduler: orShared(c.Scheduler),
		bus:       orDefault(c.Bus),
		logger: log.With().
			Str("context", "animation").
			Str("animation", id).
			Logger(),
	}
	a.resetLocked()
	return a, nil
}

// private and not guarded by mutex locks, since called by other guarded methods

func (a *Animation[A]) resetLocked() {
	if a.frequency.speed > 0 {
		a.values = newValues(a.values.start, a.values.end, 0)
	} else {
		a.values = newValues(a.values.start, a.values.end, 1)
	}
}

func (a *Animation[A]) advanceLocked() {
	a.values = newValues(a.values.start, a.values.end, a.values.progress+a.frequency.step())
}

func (a *Animation[A]) completedLocked() bool {
	return a.frequency.speed > 0 && a.values.progress >= 1 || a.frequency.speed < 0 && a.values.progress <= 0
}

func (a *Animation[A]) publish(kind events.Kind) *events.Event {
	e := events.New(kind, a)
	a.bus.Publish(e)
	return e
}

func (a *Animation[A]) register() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.states.starting = false
	a.states.run++
	run := a.states.run
	period := time.Duration(a.frequency.period()) * time.Millisecond
	a.states.handle = a.scheduler.Schedule(func() { a.tick(run) }, 0, period)
}

func (a *Animation[A]) isCurrent(run uint64) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.states.run == run && live(a.states.handle)
}

func (a *Animation[A]) tick(run uint64) {
	if !a.isCurrent(run) {
		return
	}
	if start := a.publish(events.FrameStart); !start.Cancelled() {
		a.frame(run)
	}
	a.publish(events.FrameEnd)
}

func (a *Animation[A]) frame(run uint64) {
	a.mu.Lock()
	if a.states.run != run {
		// paused or terminated by a FrameStart listener
		a.mu.Unlock()
		return
	}
	if !a.completedLocked() {
		a.advanceLocked()
		a.mu.Unlock()
		return
	}
	if a.states.looping {
		a.resetLocked()
		a.mu.Unlock()
		a.publish(events.Loop)
		a.mu.Lock()
		a.advanceLocked()
		a.mu.Unlock()
		return
	}
	a.states.run++
	if a.states.handle != nil {
		a.states.handle.Cancel()
		a.states.handle = nil
	}
	a.mu.Unlock()
	a.publish(events.Termination)
	a.logger.Debug().Msg("animation_terminated")
}

// API read

func (a *Animation[A]) ID() string {
	return a.id
}

// ValueAt maps progress with the raw protocol
func (a *Animation[A]) ValueAt(progress float64) A {
	a.mu.RLock()
	start, end, slice := a.values.start, a.values.end, a.states.slice
	a.mu.RUnlock()
	return a.protocol(start, end, progress, slice)
}

// ValueClampedAt maps progress with the clamped protocol
func (a *Animation[A]) ValueClampedAt(progress float64) A {
	a.mu.RLock()
	start, end, slice := a.values.start, a.values.end, a.states.slice
	a.mu.RUnlock()
	return a.clamped(start, end, progress, slice)
}

func (a *Animation[A]) Value() A {
	return a.ValueAt(a.Progress())
}

func (a *Animation[A]) ValueClamped() A {
	return a.ValueClampedAt(a.Progress())
}

func (a *Animation[A]) ValuePercent() float64 {
	return helpers.Lerp(0, 1, a.Progress())
}

func (a *Animation[A]) ValuePercentClamped() float64 {
	return helpers.Clamp(a.ValuePercent(), 0, 1)
}

func (a *Animation[A]) Start() A {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.values.start
}

func (a *Animation[A]) End() A {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.values.end
}

func (a *Animation[A]) Progress() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.values.progress
}

func (a *Animation[A]) Speed() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frequency.speed
}

func (a *Animation[A]) Duration() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frequency.duration
}

func (a *Animation[A]) TimeUnit() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frequency.unit
}

// Period is the tick interval in milliseconds
func (a *Animation[A]) Period() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frequency.period()
}

// Accumulation is Period*Speed, its sign gives the direction
func (a *Animation[A]) Accumulation() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frequency.accumulation()
}

func (a *Animation[A]) Slice() Slice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.states.slice
}

func (a *Animation[A]) Sensitive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.states.sensitive
}

func (a *Animation[A]) Looping() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.states.looping
}

func (a *Animation[A]) IsPositive() bool {
	return a.Speed() > 0
}

func (a *Animation[A]) IsNegative() bool {
	return a.Speed() < 0
}

func (a *Animation[A]) IsPlaying() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return live(a.states.handle)
}

func (a *Animation[A]) IsPaused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paused(a.states.handle)
}

func (a *Animation[A]) IsCompleted() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.completedLocked()
}

// IsPassing reports whether the last step crossed atProgress
func (a *Animation[A]) IsPassing(atProgress float64) bool {
	if atProgress < 0 || atProgress > 1 {
		return false
	}
	a.mu.RLock()
	progress, accumulation := a.values.progress, a.frequency.accumulation()
	a.mu.RUnlock()
	return helpers.LooseBetween(atProgress, progress-accumulation, progress)
}

// Inspect implements types.Inspectable
func (a *Animation[A]) Inspect() types.Snapshot {
	a.mu.RLock()
	s := types.Snapshot{
		ID:        a.id,
		Kind:      "animation",
		Playing:   live(a.states.handle),
		Paused:    paused(a.states.handle),
		Completed: a.completedLocked(),
		Progress:  a.values.progress,
		Speed:     a.frequency.speed,
		Looping:   a.states.looping,
	}
	a.mu.RUnlock()
	s.Value = fmt.Sprint(a.ValueClamped())
	return s
}

// API write

func (a *Animation[A]) SetStart(start A) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = newValues(start, a.values.end, a.values.progress)
}

func (a *Animation[A]) SetEnd(end A) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = newValues(a.values.start, end, a.values.progress)
}

// SetSpeed restarts playback through Play when the animation is sensitive
func (a *Animation[A]) SetSpeed(speed float64) {
	a.mu.Lock()
	a.frequency = newFrequency(speed, a.frequency.duration, a.frequency.unit)
	sensitive := a.states.sensitive
	a.mu.Unlock()

	if sensitive {
		a.Play()
	}
}

func (a *Animation[A]) NegateSpeed() {
	a.SetSpeed(-a.Speed())
}

func (a *Animation[A]) SpeedDirection(positive bool) {
	if positive {
		a.SetSpeed(math.Abs(a.Speed()))
	} else {
		a.SetSpeed(-math.Abs(a.Speed()))
	}
}

func (a *Animation[A]) DefaultSpeedPositive() {
	a.SetSpeed(1)
}

func (a *Animation[A]) DefaultSpeedNegative() {
	a.SetSpeed(-1)
}

func (a *Animation[A]) SetDuration(duration time.Duration) error {
	if duration == 0 {
		return ErrZeroDuration
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frequency = newFrequency(a.frequency.speed, duration, a.frequency.unit)
	return nil
}

// SetTimeUnit applies to the next registration (Play, Resume)
func (a *Animation[A]) SetTimeUnit(unit time.Duration) error {
	if err := validateTimeUnit(unit); err != nil {
		return fmt.Errorf("%w: %v", err, unit)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frequency = newFrequency(a.frequency.speed, a.frequency.duration, unit)
	return nil
}

func (a *Animation[A]) SetSlice(slice Slice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states.slice = slice
}

func (a *Animation[A]) MapSlice(operator func(Slice) Slice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states.slice = operator(a.states.slice)
}

func (a *Animation[A]) SetSensitive(sensitive bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states.sensitive = sensitive
}

// SetLooping restarts playback through Play when the animation is sensitive
func (a *Animation[A]) SetLooping(looping bool) {
	a.mu.Lock()
	a.states.looping = looping
	sensitive := a.states.sensitive
	a.mu.Unlock()

	if sensitive {
		a.Play()
	}
}

func (a *Animation[A]) SwitchLooping() {
	a.SetLooping(!a.Looping())
}

// API control

// Play starts from the bound opposite the direction, unless already playing
func (a *Animation[A]) Play() {
	a.mu.Lock()
	if live(a.states.handle) || a.states.starting {
		a.mu.Unlock()
		return
	}
	a.resetLocked()
	a.states.starting = true
	a.mu.Unlock()

	a.publish(events.Play)
	a.register()
	a.logger.Debug().Msg("animation_played")
}

func (a *Animation[A]) Pause() {
	a.mu.Lock()
	if !live(a.states.handle) {
		a.mu.Unlock()
		return
	}
	a.states.run++
	a.states.handle.Cancel()
	a.mu.Unlock()

	a.publish(events.Pause)
	a.logger.Debug().Msg("animation_paused")
}

// Resume registers a fresh tick, the phase within the period is not kept
func (a *Animation[A]) Resume() {
	a.mu.Lock()
	if !paused(a.states.handle) || a.states.starting {
		a.mu.Unlock()
		return
	}
	a.states.starting = true
	a.mu.Unlock()

	a.publish(events.Resume)
	a.register()
	a.logger.Debug().Msg("animation_resumed")
}

func (a *Animation[A]) PauseOrResume() {
	if a.IsPaused() {
		a.Resume()
	} else {
		a.Pause()
	}
}

// Terminate pauses and releases the registration
func (a *Animation[A]) Terminate() {
	a.Pause()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.states.handle = nil
}

func (a *Animation[A]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

func (a *Animation[A]) Replay() {
	a.Terminate()
	a.Play()
}

// API listeners, subscriptions are released with Close

func (a *Animation[A]) on(kind events.Kind, listener func()) *events.Subscription {
	return a.bus.Subscribe(kind, events.FromSource(a), func(*events.Event) { listener() })
}

func (a *Animation[A]) OnPlay(listener func()) *events.Subscription {
	return a.on(events.Play, listener)
}

func (a *Animation[A]) OnPause(listener func()) *events.Subscription {
	return a.on(events.Pause, listener)
}

func (a *Animation[A]) OnResume(listener func()) *events.Subscription {
	return a.on(events.Resume, listener)
}

func (a *Animation[A]) OnLoop(listener func()) *events.Subscription {
	return a.on(events.Loop, listener)
}

// OnTermination fires when a non looping animation ends on its own. That
// path publishes no Pause, unlike an explicit Terminate while playing.
func (a *Animation[A]) OnTermination(listener func()) *events.Subscription {
	return a.on(events.Termination, listener)
}

func (a *Animation[A]) OnFrameEnd(listener func()) *events.Subscription {
	return a.on(events.FrameEnd, listener)
}

// OnFrameStart listeners receive the event and may cancel the frame
func (a *Animation[A]) OnFrameStart(listener func(e *events.Event)) *events.Subscription {
	return a.bus.Subscribe(events.FrameStart, events.FromSource(a), listener)
}

// OnFrameStartAt fires when the frame starts while passing atProgress
func (a *Animation[A]) OnFrameStartAt(atProgress float64, listener func()) *events.Subscription {
	return a.on(events.FrameStart, func() {
		if a.IsPassing(atProgress) {
			listener()
		}
	})
}

// OnFrameEndAt fires when the frame ends while passing atProgress
func (a *Animation[A]) OnFrameEndAt(atProgress float64, listener func()) *events.Subscription {
	return a.on(events.FrameEnd, func() {
		if a.IsPassing(atProgress) {
			listener()
		}
	})
}
