package sequencing

import (
	"time"

	"github.com/ducksouplab/motion/helpers"
	"github.com/ducksouplab/motion/types"
)

// Protocol maps a progress to a value between start and end. Progress may
// lie outside [0,1] for the raw variant.
type Protocol[A any] func(start, end A, progress float64, slice Slice) A

// Easing reshapes progress before it is mapped. When an animation slice is
// an Easing, the protocols of this package apply it.
type Easing func(progress float64) float64

// Any bundles the raw and clamped protocols of a value type and builds
// animations out of them
type Any[A any] struct {
	protocol Protocol[A]
	clamped  Protocol[A]
}

// NewAny uses protocol for both raw and clamped mappings, clamping progress
// before calling it in the latter case
func NewAny[A any](protocol Protocol[A]) Any[A] {
	return Any[A]{
		protocol: protocol,
		clamped: func(start, end A, progress float64, slice Slice) A {
			return protocol(start, end, helpers.Clamp(progress, 0, 1), slice)
		},
	}
}

func NewAnyClamped[A any](protocol, clamped Protocol[A]) Any[A] {
	return Any[A]{protocol: protocol, clamped: clamped}
}

func (p Any[A]) Protocol() Protocol[A] {
	return p.protocol
}

func (p Any[A]) ProtocolClamped() Protocol[A] {
	return p.clamped
}

func (p Any[A]) Use(c AnimationConfig[A]) (*Animation[A], error) {
	return NewAnimation(p.protocol, p.clamped, c)
}

// UseDefault animates over duration milliseconds-wise with a positive speed
func (p Any[A]) UseDefault(start, end A, duration time.Duration, slice Slice) (*Animation[A], error) {
	return p.Use(AnimationConfig[A]{Start: start, End: end, Duration: duration, Slice: slice})
}

func eased(progress float64, slice Slice) float64 {
	if easing, ok := slice.(Easing); ok && easing != nil {
		return easing(progress)
	}
	return progress
}

// Lerped builds a protocol out of a linear blend, honoring Easing slices
func Lerped[A any](lerp func(a, b A, t float64) A) Protocol[A] {
	return func(start, end A, progress float64, slice Slice) A {
		return lerp(start, end, eased(progress, slice))
	}
}

var (
	Float64 = NewAny(Lerped(helpers.Lerp))
	Vectors = NewAny(Lerped(func(a, b types.Vector, t float64) types.Vector { return a.Lerp(b, t) }))
	Boxes   = NewAny(Lerped(func(a, b types.Box, t float64) types.Box { return a.Lerp(b, t) }))
	Colors  = NewAny(Lerped(types.LerpColor))
)
