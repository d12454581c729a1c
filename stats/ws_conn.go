package stats

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Conn is the subset of *websocket.Conn used by the stats server
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Helper to make websocket writes threadsafe
type wsConn struct {
	sync.Mutex
	Conn
	logger zerolog.Logger
}

type messageOut struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

type messageIn struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

type controlPayload struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

func newWsConn(unsafe Conn, origin string) *wsConn {
	return &wsConn{
		Conn:   unsafe,
		logger: log.With().Str("context", "stats").Str("origin", origin).Logger(),
	}
}

func (ws *wsConn) send(kind string, payload any) error {
	ws.Lock()
	defer ws.Unlock()

	return ws.WriteJSON(messageOut{Kind: kind, Payload: payload})
}
