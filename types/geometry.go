package types

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ducksouplab/motion/helpers"
)

type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

func (v Vector) Subtract(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{v.X * f, v.Y * f}
}

func (v Vector) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector) Lerp(o Vector, t float64) Vector {
	return Vector{helpers.Lerp(v.X, o.X, t), helpers.Lerp(v.Y, o.Y, t)}
}

// LooseEquals compares component-wise with helpers.Epsilon tolerance
func (v Vector) LooseEquals(o Vector) bool {
	return helpers.LooseEquals(v.X, o.X) && helpers.LooseEquals(v.Y, o.Y)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Box is an axis aligned rectangle: Origin is the top left corner
type Box struct {
	Origin Vector `json:"origin" yaml:"origin"`
	Size   Vector `json:"size" yaml:"size"`
}

// NewBox normalizes negative sizes so that Origin stays the top left corner
func NewBox(origin, size Vector) Box {
	end := origin.Add(size)
	topLeft := Vector{math.Min(origin.X, end.X), math.Min(origin.Y, end.Y)}
	bottomRight := Vector{math.Max(origin.X, end.X), math.Max(origin.Y, end.Y)}
	return Box{topLeft, bottomRight.Subtract(topLeft)}
}

func (b Box) Center() Vector {
	return b.Origin.Add(b.Size.Scale(0.5))
}

func (b Box) Lerp(o Box, t float64) Box {
	return Box{b.Origin.Lerp(o.Origin, t), b.Size.Lerp(o.Size, t)}
}

func (b Box) LooseEquals(o Box) bool {
	return b.Origin.LooseEquals(o.Origin) && b.Size.LooseEquals(o.Size)
}

func (b Box) String() string {
	return fmt.Sprintf("[%v %v]", b.Origin, b.Size)
}

// LerpColor blends channels, t is clamped to [0,1]
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = helpers.Clamp(t, 0, 1)
	channel := func(x, y uint8) uint8 {
		return uint8(math.Round(helpers.Lerp(float64(x), float64(y), t)))
	}
	return color.RGBA{channel(a.R, b.R), channel(a.G, b.G), channel(a.B, b.B), channel(a.A, b.A)}
}
