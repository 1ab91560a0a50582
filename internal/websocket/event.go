package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the outcome of a transaction event
type EventType string

const (
	EventTypeCompleted EventType = "completed"
	EventTypeFailed    EventType = "failed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.completed"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCompleted creates a transaction.completed event
func TransactionCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeTransaction, payload)
}

// TransactionFailed creates a transaction.failed event
func TransactionFailed(payload interface{}) Event {
	return NewEvent(EventTypeFailed, EntityTypeTransaction, payload)
}
