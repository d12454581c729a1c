package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ducksouplab/motion/env"
	"github.com/ducksouplab/motion/store"
	"github.com/ducksouplab/motion/types"
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

func TestRouter(t *testing.T) {
	e := &fakeEngine{id: "server-test"}
	store.Track("tracked_by_server", e)
	defer store.Untrack(e.id)

	router := NewRouter()

	serve := func(t testing.TB, method, path string, auth bool) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(method, env.WebPrefix+path, nil)
		if auth {
			req.SetBasicAuth(env.StatsLogin, env.StatsPassword)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Require basic auth", func(t *testing.T) {
		if rr := serve(t, "GET", "/api/engines", false); rr.Code != http.StatusUnauthorized {
			t.Errorf("got %d but expected 401", rr.Code)
		}
	})

	t.Run("Require basic auth on stats websocket", func(t *testing.T) {
		if rr := serve(t, "GET", "/ws", false); rr.Code != http.StatusUnauthorized {
			t.Errorf("got %d but expected 401", rr.Code)
		}
		// authenticated but not a websocket handshake
		if rr := serve(t, "GET", "/ws", true); rr.Code != http.StatusBadRequest {
			t.Errorf("got %d but expected 400", rr.Code)
		}
	})

	t.Run("List engines", func(t *testing.T) {
		rr := serve(t, "GET", "/api/engines", true)
		if rr.Code != http.StatusOK {
			t.Fatalf("got %d but expected 200", rr.Code)
		}
		var snapshots []types.Snapshot
		if err := json.NewDecoder(rr.Body).Decode(&snapshots); err != nil {
			t.Fatal(err)
		}
		found := false
		for _, s := range snapshots {
			found = found || (s.ID == e.id && s.Name == "tracked_by_server")
		}
		if !found {
			t.Errorf("engine missing from %+v", snapshots)
		}
	})

	t.Run("Get engine", func(t *testing.T) {
		if rr := serve(t, "GET", "/api/engines/server-test", true); rr.Code != http.StatusOK {
			t.Errorf("got %d but expected 200", rr.Code)
		}
		if rr := serve(t, "GET", "/api/engines/missing", true); rr.Code != http.StatusNotFound {
			t.Errorf("got %d but expected 404", rr.Code)
		}
	})

	t.Run("Control engine", func(t *testing.T) {
		rr := serve(t, "POST", "/api/engines/server-test/pause", true)
		if rr.Code != http.StatusOK || !e.paused {
			t.Errorf("got %d, paused %v", rr.Code, e.paused)
		}
		if rr := serve(t, "POST", "/api/engines/server-test/replay", true); rr.Code != http.StatusBadRequest {
			t.Errorf("got %d but expected 400", rr.Code)
		}
		if rr := serve(t, "POST", "/api/engines/missing/pause", true); rr.Code != http.StatusNotFound {
			t.Errorf("got %d but expected 404", rr.Code)
		}
		if rr := serve(t, "POST", "/api/engines/server-test/jump", true); rr.Code != http.StatusNotFound {
			t.Errorf("unknown actions should not be routed, got %d", rr.Code)
		}
	})
}
