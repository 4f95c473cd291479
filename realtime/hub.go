// Package realtime owns the set of connected websocket listeners. Order
// assembly and the status engine only publish; they never see subscribers.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/omrannajeeb/leohol/models"
)

// Event is the envelope written to every connected client.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle upgrades the request and keeps the connection registered until the
// client goes away. Inbound messages are discarded.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// EmitNewOrder broadcasts a freshly created order. Best-effort: a failed or
// slow client is dropped, never reported to the publisher.
func (h *Hub) EmitNewOrder(order *models.Order) {
	h.broadcast("order:new", order)
}

// EmitOrderUpdate broadcasts a status change.
func (h *Hub) EmitOrderUpdate(order *models.Order) {
	h.broadcast("order:update", order)
}

func (h *Hub) broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.logger.Error("marshal realtime event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports currently connected listeners.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
