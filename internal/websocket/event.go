package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypePrestation EntityType = "prestation"
	EntityTypeExpense    EntityType = "expense"
	EntityTypeReceipt    EntityType = "receipt"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "prestation.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "prestation"
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

// PrestationCreated builds a prestation.created event
func PrestationCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypePrestation, payload)
}

// PrestationUpdated builds a prestation.updated event
func PrestationUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypePrestation, payload)
}

// PrestationDeleted builds a prestation.deleted event
func PrestationDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypePrestation, payload)
}

// ExpenseCreated builds an expense.created event
func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

// ExpenseUpdated builds an expense.updated event
func ExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExpense, payload)
}

// ExpenseDeleted builds an expense.deleted event
func ExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpense, payload)
}
