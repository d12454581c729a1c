package stats

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ducksouplab/motion/store"
	"github.com/ducksouplab/motion/types"
	"github.com/silently/wsmock"
)

type fakeEngine struct {
	id     string
	paused bool
}

func (f *fakeEngine) ID() string { return f.id }
func (f *fakeEngine) Inspect() types.Snapshot {
	return types.Snapshot{ID: f.id, Kind: "fake", Paused: f.paused}
}
func (f *fakeEngine) Terminate()      {}
func (f *fakeEngine) Pause()          { f.paused = true }
func (f *fakeEngine) Resume()         { f.paused = false }
func (f *fakeEngine) IsPlaying() bool { return !f.paused }
func (f *fakeEngine) IsPaused() bool  { return f.paused }

func controlMessageIn(id, action string) messageIn {
	payload, _ := json.Marshal(controlPayload{id, action})
	return messageIn{"control", string(payload)}
}

// receivedContains passes once a message written to the client contains substr
func receivedContains(substr string) func(end bool, latest any, all []any) (done, passed bool, errorMessage string) {
	return func(end bool, _ any, all []any) (done, passed bool, errorMessage string) {
		for _, m := range all {
			b, _ := json.Marshal(m)
			if strings.Contains(string(b), substr) {
				return true, true, ""
			}
		}
		if end {
			return true, false, "no message containing " + substr
		}
		return false, false, ""
	}
}

func TestRunStatsServer(t *testing.T) {
	e := &fakeEngine{id: "stats-test"}
	store.Track("tracked_by_stats", e)
	defer store.Untrack(e.id)

	t.Run("Stream updates", func(t *testing.T) {
		conn, rec := wsmock.NewGorillaMockAndRecorder(t)
		go runStatsServer(conn, "origin", 20*time.Millisecond)
		rec.NewAssertion().With(receivedContains("update"))
		rec.NewAssertion().With(receivedContains("tracked_by_stats"))
		wsmock.RunAssertions(t, 500*time.Millisecond)
	})

	t.Run("Control engines", func(t *testing.T) {
		conn, rec := wsmock.NewGorillaMockAndRecorder(t)
		go runStatsServer(conn, "origin", time.Hour)
		conn.Send(controlMessageIn(e.id, "jump"))
		conn.Send(controlMessageIn(e.id, "pause"))
		conn.Send(messageIn{Kind: "inspect"})
		rec.NewAssertion().With(receivedContains("unsupported action"))
		rec.NewAssertion().With(receivedContains("controlled"))
		rec.NewAssertion().With(receivedContains("tracked_by_stats"))
		wsmock.RunAssertions(t, 500*time.Millisecond)
	})
}
