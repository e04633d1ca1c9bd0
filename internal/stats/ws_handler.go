package stats

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/server"
	ws "github.com/adibarra/shadle/pkg/http/ws"
)

// WSHandler upgrades clients onto the stats broadcast feed.
type WSHandler struct {
	hub    *ws.Hub
	logger zerolog.Logger
}

// NewWSHandler constructs a stats WebSocket handler.
func NewWSHandler(hub *ws.Hub, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger.With().Str("component", "stats_ws").Logger(),
	}
}

// HandleWebSocket upgrades the HTTP connection and keeps it registered until
// the client disconnects. Clients receive every stats update; the only
// inbound message handled is ping, anything else gets an error frame.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	raw, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	clientID := uuid.NewString()
	conn := ws.NewConnection(raw, h.logger)
	h.hub.RegisterConnection(clientID, conn)
	defer h.hub.UnregisterConnection(clientID)

	go conn.WritePump()
	conn.ReadPump(func(msg ws.Message) error {
		if msg.Type == ws.TypePing {
			return h.hub.SendTo(clientID, ws.Message{Type: ws.TypePong})
		}

		payload, err := json.Marshal(ws.ErrorPayload{
			Code:    "unsupported_type",
			Message: "unsupported message type: " + msg.Type,
		})
		if err != nil {
			return err
		}
		return conn.Send(ws.Message{Type: ws.TypeError, Payload: payload})
	})
}
