package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Topics published by the features. Deletes carry a {deleted: true, id} payload.
const (
	TopicDisasterUpdated    = "disaster_updated"
	TopicResourceUpdated    = "resource_updated"
	TopicReportUpdated      = "report_updated"
	TopicSocialMediaUpdated = "social_media_updated"
)

// Broadcaster is the capability handed to services that publish change events.
// Publish is fire-and-forget: no delivery guarantee, no replay for late
// subscribers.
type Broadcaster interface {
	Publish(topic string, payload any)
}

// Event is the wire envelope for one change event.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans change events out to all currently connected websocket clients.
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Publish serializes the event and hands it to every connected client.
// Clients whose buffers are full miss the event; updates are disposable.
func (h *Hub) Publish(topic string, payload any) {
	data, err := json.Marshal(Event{Event: topic, Payload: payload})
	if err != nil {
		h.logger.Error("Failed to encode change event", zap.String("topic", topic), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow subscriber, skip this event.
		}
	}
}

// ClientCount reports how many subscribers are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handler returns the websocket endpoint handler. Each connection is held
// open until the peer closes it or a write fails.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{send: make(chan []byte, 16)}
		h.register(c)
		defer h.unregister(c)

		h.logger.Info("WebSocket connected", zap.String("remote", conn.RemoteAddr().String()))

		// Drain inbound frames so close frames are processed; clients
		// only listen.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case data := <-c.send:
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

// Upgrade gates the websocket route: non-upgrade requests get 426.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
