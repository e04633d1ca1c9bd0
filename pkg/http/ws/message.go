package ws

import "encoding/json"

// MessageType constants for the stats WebSocket protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypePong        = "pong"
	TypeStatsUpdate = "stats_update"
	TypeError       = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload reports a protocol-level problem to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
