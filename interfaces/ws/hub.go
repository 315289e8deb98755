// Package ws streams editor events to connected clients over WebSocket.
// Every domain and interaction event published on the editor bus is
// fanned out as a JSON message, letting hosts invalidate and redraw.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"graphcanvas/domain/events"
)

const clientBuffer = 64

// EventMessage is the wire envelope for a streamed event
type EventMessage struct {
	Type    string             `json:"type"`
	Payload events.DomainEvent `json:"payload"`
}

// Hub fans editor events out to WebSocket clients
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub; wire it to an editor with Subscribe
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The demo host serves the client itself
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// EventHandler returns the bus handler that broadcasts every event
func (h *Hub) EventHandler() events.Handler {
	return func(event events.DomainEvent) {
		h.Broadcast(event)
	}
}

// Broadcast sends one event to every connected client. Slow clients
// are dropped rather than allowed to stall the editor.
func (h *Hub) Broadcast(event events.DomainEvent) {
	data, err := json.Marshal(EventMessage{Type: event.GetEventType(), Payload: event})
	if err != nil {
		h.logger.Error("Failed to encode event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("Dropping slow WebSocket client")
		}
	}
}

// HandleWS handles GET /ws: upgrades the connection and streams events
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("WebSocket client connected", zap.Int("clients", count))

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// writeLoop pushes queued messages to one client
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readLoop drains the client until it disconnects; inbound messages
// are ignored, input goes through the REST surface
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// drop removes a client if still registered
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
