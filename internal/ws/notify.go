package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the JSON frame pushed to clients.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notify sends an event to all connections of userID.
func (h *Hub) Notify(userID uuid.UUID, event string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("ws encode event failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.Send(userID, b)
}
