package sequencing

import (
	"math"
	"sync"

	"github.com/ducksouplab/motion/helpers"
)

const (
	DefaultApproximatedSteps = 35
)

// Scalar is a float64 Interpolation remembering where it comes from, so
// that it can report a percentage and be reversed
type Scalar struct {
	*Interpolation[float64]
	mu     sync.RWMutex
	origin float64
}

func ratioFromSteps(steps float64) float64 {
	return helpers.Clamp(1/steps, 0, 1)
}

// NewScalar starts converging from origin to target right away, in about
// steps ticks (DefaultApproximatedSteps when steps <= 0). With pauseAtStart
// the interpolation is registered but paused.
func NewScalar(origin, target, steps float64, pauseAtStart bool) (*Scalar, error) {
	return newScalar(origin, target, steps, pauseAtStart, nil)
}

func newScalar(origin, target, steps float64, pauseAtStart bool, sc Scheduler) (*Scalar, error) {
	if steps <= 0 {
		steps = DefaultApproximatedSteps
	}
	i, err := NewInterpolation(InterpolationConfig[float64]{
		Initial:   origin,
		Ratio:     ratioFromSteps(steps),
		Blend:     LinearBlend,
		Equal:     helpers.LooseEquals,
		Scheduler: sc,
	})
	if err != nil {
		return nil, err
	}
	s := &Scalar{Interpolation: i, origin: origin}
	s.SetTarget(target)
	if pauseAtStart {
		s.Pause()
	}
	return s, nil
}

func (s *Scalar) Origin() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

func (s *Scalar) SetOrigin(origin float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = origin
}

// Percentage of the way from origin to target, in [0,1]
func (s *Scalar) Percentage() float64 {
	origin, target := s.Origin(), s.Target()
	if origin == target {
		return 1
	}
	return helpers.Clamp((s.Value()-origin)/(target-origin), 0, 1)
}

// ApproximatedSteps is the inverse of the ratio
func (s *Scalar) ApproximatedSteps() float64 {
	ratio := s.Ratio()
	if ratio == 0 {
		return math.Inf(1)
	}
	return 1 / ratio
}

func (s *Scalar) SetApproximatedSteps(steps float64) error {
	return s.SetRatio(ratioFromSteps(steps))
}

// Reverse swaps origin and target, the value keeps converging from where it is
func (s *Scalar) Reverse() {
	s.mu.Lock()
	origin := s.origin
	s.origin = s.Target()
	s.mu.Unlock()
	s.SetTarget(origin)
}

// ResetToOrigin jumps back to origin
func (s *Scalar) ResetToOrigin() {
	s.Reset(s.Origin())
}

// Copy creates an independent scalar with the same origin, value, target
// and ratio. The copy is playing unless s is paused or not available.
func (s *Scalar) Copy() (*Scalar, error) {
	i, err := NewInterpolation(InterpolationConfig[float64]{
		Initial:   s.Value(),
		Ratio:     s.Ratio(),
		Blend:     s.blend,
		Equal:     s.equal,
		Period:    s.period,
		Scheduler: s.scheduler,
		Bus:       s.bus,
	})
	if err != nil {
		return nil, err
	}
	c := &Scalar{Interpolation: i, origin: s.Origin()}
	if s.IsAvailable() {
		c.SetTarget(s.Target())
		if s.IsPaused() {
			c.Pause()
		}
	}
	return c, nil
}
