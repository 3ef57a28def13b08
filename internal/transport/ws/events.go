package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew   = "message.new"
	EventTypeItemResolved = "item.resolved"
	EventTypePresence     = "presence"
	EventTypePong         = "pong"
	EventTypeError        = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// MessagePayload carries a new message plus the canonical key of its
// conversation so clients can route the event to an open thread.
type MessagePayload struct {
	domain.Message
	ConversationKey string `json:"conversation_key"`
}

type ItemResolvedPayload struct {
	ItemID uuid.UUID `json:"item_id"`
	Title  string    `json:"title"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
