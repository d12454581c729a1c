package helpers

import "math"

// Epsilon is the tolerance used by the loose comparisons.
const Epsilon = 1e-6

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Lerp returns a + (b-a)*t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func LooseEquals(a, b float64) bool {
	return LooseEqualsWithin(a, b, Epsilon)
}

func LooseEqualsWithin(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// LooseGreater reports a > b or a ~= b
func LooseGreater(a, b float64) bool {
	return a > b || LooseEquals(a, b)
}

// LooseLess reports a < b or a ~= b
func LooseLess(a, b float64) bool {
	return a < b || LooseEquals(a, b)
}

// LooseBetween is inclusive on both bounds and accepts bounds in any order
func LooseBetween(x, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return LooseGreater(x, lo) && LooseLess(x, hi)
}
