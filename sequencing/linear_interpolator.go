package sequencing

import (
	"sync"
	"time"

	"github.com/ducksouplab/motion/events"
)

// LinearInterpolator ramps from an initial to a final value and sends
// each intermediate value on C, which is closed when the ramp ends
type LinearInterpolator struct {
	// API
	C chan float64
	// private
	sync.Mutex
	animation *Animation[float64]
	subs      events.Group
	closed    bool
}

// NewLinearInterpolator sends a value every step until duration is reached
func NewLinearInterpolator(initialValue, finalValue float64, duration, step time.Duration) (*LinearInterpolator, error) {
	return newLinearInterpolator(initialValue, finalValue, duration, step, nil)
}

func newLinearInterpolator(initialValue, finalValue float64, duration, step time.Duration, s Scheduler) (*LinearInterpolator, error) {
	animation, err := Float64.Use(AnimationConfig[float64]{
		Start:     initialValue,
		End:       finalValue,
		Duration:  duration,
		TimeUnit:  step,
		Scheduler: s,
	})
	if err != nil {
		return nil, err
	}
	// sized from the normalized duration and unit
	steps := int(animation.Duration()/animation.TimeUnit()) + 1
	interpolator := &LinearInterpolator{
		C:         make(chan float64, steps),
		animation: animation,
	}
	interpolator.subs = events.Group{
		animation.OnFrameEnd(interpolator.send),
		animation.OnTermination(interpolator.Stop),
	}
	animation.Play()
	return interpolator, nil
}

func (li *LinearInterpolator) send() {
	li.Lock()
	defer li.Unlock()

	if li.closed {
		return
	}
	select {
	case li.C <- li.animation.ValueClamped():
	default:
		// reader is late, drop intermediate value
	}
}

// Stop ends the ramp and closes C, it is safe to call several times
func (li *LinearInterpolator) Stop() {
	li.Lock()
	defer li.Unlock()

	if li.closed {
		return
	}
	li.closed = true
	li.animation.Terminate()
	li.subs.Close()
	close(li.C)
}
