package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound    = errors.New("engine not found")
	ErrUnsupported = errors.New("unsupported action")
)

type player interface{ Play() }
type replayer interface{ Replay() }
type resetter interface{ Reset() }

// Control applies a named action (play, pause, resume, replay, terminate
// or reset) to the tracked engine id
func Control(id, action string) error {
	e, ok := Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch action {
	case "pause":
		e.Pause()
	case "resume":
		e.Resume()
	case "terminate":
		e.Terminate()
	case "play":
		p, ok := e.(player)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupported, action)
		}
		p.Play()
	case "replay":
		r, ok := e.(replayer)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupported, action)
		}
		r.Replay()
	case "reset":
		r, ok := e.(resetter)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupported, action)
		}
		r.Reset()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, action)
	}
	log.Info().Str("context", "store").Str("engine", id).Str("action", action).Msg("engine_controlled")
	return nil
}
