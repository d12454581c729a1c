package sequencing

import (
	"math"
	"testing"

	"github.com/ducksouplab/motion/scheduler"
)

func TestScalar(t *testing.T) {

	t.Run("Start right away", func(t *testing.T) {
		m := scheduler.NewManual()
		s, err := newScalar(0, 10, 2, false, m)
		if err != nil {
			t.Fatal(err)
		}
		if s.Ratio() != 0.5 || s.ApproximatedSteps() != 2 {
			t.Errorf("got ratio %v but expected 0.5", s.Ratio())
		}
		m.Step()
		if s.Value() != 5 || s.Percentage() != 0.5 {
			t.Errorf("got value %v percentage %v", s.Value(), s.Percentage())
		}
	})

	t.Run("Default steps", func(t *testing.T) {
		s, err := newScalar(0, 1, 0, true, scheduler.NewManual())
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(s.ApproximatedSteps()-DefaultApproximatedSteps) > 1e-9 {
			t.Errorf("got %v steps", s.ApproximatedSteps())
		}
	})

	t.Run("Pause at start", func(t *testing.T) {
		m := scheduler.NewManual()
		s, _ := newScalar(0, 10, 2, true, m)
		m.StepN(3)
		if !s.IsPaused() || s.Value() != 0 {
			t.Error("scalar should be paused at start")
		}
	})

	t.Run("Reverse", func(t *testing.T) {
		m := scheduler.NewManual()
		s, _ := newScalar(0, 10, 2, false, m)
		m.Step()
		s.Reverse()
		if s.Origin() != 10 || s.Target() != 0 {
			t.Errorf("got origin %v target %v", s.Origin(), s.Target())
		}
		m.Step()
		if s.Value() != 2.5 || s.Percentage() != 0.75 {
			t.Errorf("got value %v percentage %v", s.Value(), s.Percentage())
		}
		s.ResetToOrigin()
		if s.Value() != 10 || s.Percentage() != 0 {
			t.Errorf("got value %v percentage %v", s.Value(), s.Percentage())
		}
	})

	t.Run("Change steps", func(t *testing.T) {
		s, _ := newScalar(0, 10, 2, true, scheduler.NewManual())
		if err := s.SetApproximatedSteps(4); err != nil || s.Ratio() != 0.25 {
			t.Errorf("got ratio %v, err %v", s.Ratio(), err)
		}
		if err := s.SetApproximatedSteps(0.5); err != nil || s.Ratio() != 1 {
			t.Errorf("ratio should be clamped to 1, got %v", s.Ratio())
		}
	})

	t.Run("Copy", func(t *testing.T) {
		m := scheduler.NewManual()
		s, _ := newScalar(0, 10, 2, false, m)
		m.Step()
		c, err := s.Copy()
		if err != nil {
			t.Fatal(err)
		}
		if c.ID() == s.ID() || c.Value() != 5 || c.Target() != 10 || c.Origin() != 0 {
			t.Error("copy should share state but not identity")
		}
		s.Pause()
		m.Step()
		if c.Value() != 7.5 || s.Value() != 5 {
			t.Errorf("copy should tick independently, got %v and %v", c.Value(), s.Value())
		}
	})
}
