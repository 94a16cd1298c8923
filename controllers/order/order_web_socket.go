package orderControllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-backend/models"
)

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderItemAdded EventType = "order.item_added"
	EventOrderDeleted   EventType = "order.deleted"
)

// Event describes a committed order mutation.
type Event struct {
	Type      EventType         `json:"type"`
	Order     models.Order      `json:"order"`
	LineItems []models.LineItem `json:"lineItems"`
}

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans order events out to connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

// OrderWebSocketHandler upgrades the request and keeps the client registered
// until it disconnects. Incoming messages are discarded.
func (h *Hub) OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish broadcasts event to every client. Clients that fail to receive it
// are dropped.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("encode order event", "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("drop websocket client", "error", err)
			delete(h.clients, client)
			_ = client.Close()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
