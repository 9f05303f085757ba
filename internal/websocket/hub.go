package websocket

import (
	"encoding/json"
	"sync"

	"matchup/internal/events"

	"github.com/sirupsen/logrus"
)

const allFields = ""

// Hub keeps connected clients grouped by the field they follow. Clients
// registered under allFields receive every event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  logrus.FieldLogger
}

func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(fieldID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[fieldID] == nil {
		h.clients[fieldID] = make(map[*Client]struct{})
	}
	h.clients[fieldID][client] = struct{}{}
}

func (h *Hub) Unregister(fieldID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[fieldID] == nil {
		return
	}
	delete(h.clients[fieldID], client)
	if len(h.clients[fieldID]) == 0 {
		delete(h.clients, fieldID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Publish lets the hub sit on the bus like any other sink.
func (h *Hub) Publish(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).WithField("event", event.Type).Error("marshal websocket event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.sendTo(allFields, payload)
	if event.FieldID != allFields {
		h.sendTo(event.FieldID, payload)
	}
}

func (h *Hub) sendTo(fieldID string, payload []byte) {
	for client := range h.clients[fieldID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}

// Run forwards bus events to clients until the subscription closes.
func (h *Hub) Run(ch <-chan events.Event) {
	events.Forward(ch, h)
}
