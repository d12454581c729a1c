package types

import (
	"image/color"
	"testing"
)

func TestVector(t *testing.T) {
	v := Vector{0, 0}.Lerp(Vector{10, 20}, 0.5)
	if !v.LooseEquals(Vector{5, 10}) {
		t.Errorf("got %v but expected (5, 10)", v)
	}
	if (Vector{3, 4}).Magnitude() != 5 {
		t.Error("magnitude of (3, 4) should be 5")
	}
}

func TestBox(t *testing.T) {
	t.Run("Normalize negative size", func(t *testing.T) {
		b := NewBox(Vector{10, 10}, Vector{-4, -6})
		if !b.LooseEquals(Box{Vector{6, 4}, Vector{4, 6}}) {
			t.Errorf("unexpected box %v", b)
		}
	})

	t.Run("Lerp origin and size", func(t *testing.T) {
		from := Box{Vector{0, 0}, Vector{2, 2}}
		to := Box{Vector{10, 10}, Vector{4, 4}}
		mid := from.Lerp(to, 0.5)
		if !mid.LooseEquals(Box{Vector{5, 5}, Vector{3, 3}}) {
			t.Errorf("unexpected box %v", mid)
		}
		if !mid.Center().LooseEquals(Vector{6.5, 6.5}) {
			t.Errorf("unexpected center %v", mid.Center())
		}
	})
}

func TestLerpColor(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	if got := LerpColor(black, white, 2); got != white {
		t.Errorf("got %v but expected clamped white", got)
	}
	if got := LerpColor(black, white, 0.5); got.R != 128 || got.A != 255 {
		t.Errorf("unexpected mid color %v", got)
	}
}
