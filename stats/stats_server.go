package stats

import (
	"encoding/json"
	"time"

	"github.com/ducksouplab/motion/store"
)

const (
	DefaultPeriod = 900 * time.Millisecond
)

func (ws *wsConn) readLoop(done chan<- struct{}) {
	defer close(done)

	for {
		var m messageIn
		if err := ws.ReadJSON(&m); err != nil {
			ws.logger.Debug().Err(err).Msg("stats_client_left")
			return
		}

		switch m.Kind {
		case "control":
			var payload controlPayload
			if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
				ws.send("error", "invalid_payload")
				continue
			}
			if err := store.Control(payload.ID, payload.Action); err != nil {
				ws.send("error", err.Error())
			} else {
				ws.send("controlled", payload)
			}
		case "inspect":
			ws.send("update", store.Inspect())
		}
	}
}

// API

// RunStatsServer streams snapshots of tracked engines until the client
// leaves or a write fails. Clients may also send control messages.
func RunStatsServer(unsafe Conn, origin string) {
	runStatsServer(unsafe, origin, DefaultPeriod)
}

func runStatsServer(unsafe Conn, origin string, period time.Duration) {
	ws := newWsConn(unsafe, origin)
	defer ws.Close()

	ws.logger.Info().Msg("stats_server_started")
	done := make(chan struct{})
	go ws.readLoop(done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.send("update", store.Inspect()); err != nil {
				ws.logger.Error().Err(err).Msg("stats_write_failed")
				return
			}
		}
	}
}
