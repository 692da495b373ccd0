package realtime

import (
	"encoding/json"
	"sync"

	"github.com/Luapxanna/ops-pilot/internal/logging"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// TaskEvent is pushed to a task's assignee when the state machine moves it.
type TaskEvent struct {
	Type   string `json:"type"`
	TaskID uint   `json:"taskId"`
	Status string `json:"status,omitempty"`
}

// Hub maintains active user connections and pushes task events to them.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{userIDToClients: make(map[string]map[Client]struct{})}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// NotifyTask sends a task event to all connections of the given user.
// A nil hub or missing user is a no-op; realtime delivery is best-effort
// and never affects the primary operation.
func (h *Hub) NotifyTask(userID string, event TaskEvent) {
	if h == nil || userID == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Warnf("Failed to encode task event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		// failed writes are cleaned up by the ws handler on its side
		c.Send(payload)
	}
}
