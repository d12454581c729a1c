package store

import (
	"errors"
	"testing"
)

type fakePlayer struct {
	fakeEngine
	plays int
}

func (f *fakePlayer) Play() { f.plays++ }

func TestControl(t *testing.T) {
	e := &fakePlayer{fakeEngine: fakeEngine{id: "control-test"}}
	Track("c", e)
	defer Untrack(e.id)

	if err := Control(e.id, "play"); err != nil || e.plays != 1 {
		t.Errorf("play failed: %v", err)
	}
	if err := Control(e.id, "resume"); err != nil || !e.playing {
		t.Errorf("resume failed: %v", err)
	}
	if err := Control(e.id, "pause"); err != nil || e.playing {
		t.Errorf("pause failed: %v", err)
	}
	if err := Control(e.id, "replay"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v but expected ErrUnsupported", err)
	}
	if err := Control(e.id, "jump"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v but expected ErrUnsupported", err)
	}
	if err := Control("missing", "pause"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v but expected ErrNotFound", err)
	}
}
