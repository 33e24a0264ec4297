package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub keeps the open connections of every signed-in owner. An owner may have
// several tabs open, each with its own connection.
type Hub struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*client
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]map[*websocket.Conn]*client),
	}
}

func (h *Hub) Register(ownerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[ownerID]
	if !ok {
		conns = make(map[*websocket.Conn]*client)
		h.clients[ownerID] = conns
	}
	conns[conn] = &client{conn: conn}
	h.logger.Debug("WebSocket client registered", zap.String("owner", ownerID), zap.Int("connections", len(conns)))
}

func (h *Hub) Unregister(ownerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[ownerID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, ownerID)
	}
	h.logger.Debug("WebSocket client unregistered", zap.String("owner", ownerID))
}

func (h *Hub) Connections(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ownerID])
}

// Publish sends payload as JSON to every connection of the owner. Owners
// without an open connection are skipped silently.
func (h *Hub) Publish(ownerID string, payload interface{}) {
	message, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to encode websocket payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[ownerID]))
	for _, c := range h.clients[ownerID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(message); err != nil {
			h.logger.Warn("Failed to push websocket message", zap.String("owner", ownerID), zap.Error(err))
		}
	}
}
