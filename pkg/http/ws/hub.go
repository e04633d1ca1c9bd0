package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var (
	ErrConnectionNotFound = errors.New("ws: connection not found")
	ErrConnectionClosed   = errors.New("ws: connection closed")
	ErrSendQueueFull      = errors.New("ws: send queue full")
)

// Hub tracks live WebSocket connections and fans stats updates out to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection // client_id -> connection
	logger      zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		logger:      logger,
	}
}

// RegisterConnection adds a connection for a client, replacing any previous
// one under the same id.
func (h *Hub) RegisterConnection(clientID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[clientID]; exists {
		old.Close()
	}
	h.connections[clientID] = conn
	h.logger.Debug().Str("client_id", clientID).Msg("connection registered")
}

// UnregisterConnection removes and closes a connection.
func (h *Hub) UnregisterConnection(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[clientID]; exists {
		conn.Close()
		delete(h.connections, clientID)
		h.logger.Debug().Str("client_id", clientID).Msg("connection unregistered")
	}
}

// BroadcastAll sends a message to every connected client.
func (h *Hub) BroadcastAll(msg Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var firstErr error
	for clientID, conn := range h.connections {
		if err := conn.Send(msg); err != nil && firstErr == nil {
			firstErr = err
			h.logger.Warn().Err(err).Str("client_id", clientID).Msg("broadcast send failed")
		}
	}
	return firstErr
}

// SendTo delivers a message to one client.
func (h *Hub) SendTo(clientID string, msg Message) error {
	h.mu.RLock()
	conn, exists := h.connections[clientID]
	h.mu.RUnlock()

	if !exists {
		return ErrConnectionNotFound
	}
	return conn.Send(msg)
}

// Len reports the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Connection represents a WebSocket connection with a buffered send queue.
type Connection struct {
	conn   *websocket.Conn
	sendCh chan Message
	mu     sync.Mutex
	closed bool
	logger zerolog.Logger
}

// NewConnection wraps a WebSocket connection.
func NewConnection(conn *websocket.Conn, logger zerolog.Logger) *Connection {
	return &Connection{
		conn:   conn,
		sendCh: make(chan Message, 64),
		logger: logger,
	}
}

// Send queues a message for delivery.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close shuts down the connection.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
	c.conn.Close()
}

// WritePump drains the send queue onto the wire.
func (c *Connection) WritePump() {
	defer c.conn.Close()

	for msg := range c.sendCh {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Warn().Err(err).Msg("ws write error")
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump receives messages and calls the handler until the connection
// drops or the handler errors.
func (c *Connection) ReadPump(handler func(Message) error) {
	defer c.conn.Close()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := handler(msg); err != nil {
			return
		}
	}
}
