package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event carries
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypePosted    EventType = "posted"
	EventTypeDeposited EventType = "deposited"
	EventTypeClosed    EventType = "closed"
)

// EntityType represents the entity the event is about
type EntityType string

const (
	EntityTypeLoan       EntityType = "loan"
	EntityTypeRepayment  EntityType = "repayment"
	EntityTypeSaving     EntityType = "saving"
	EntityTypeExpense    EntityType = "expense"
	EntityTypeCollection EntityType = "collection"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "repayment.posted"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "repayment"
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

// LoanCreated creates a loan.created event
func LoanCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLoan, payload)
}

// LoanUpdated creates a loan.updated event
func LoanUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLoan, payload)
}

// LoanClosed creates a loan.closed event
func LoanClosed(payload interface{}) Event {
	return NewEvent(EventTypeClosed, EntityTypeLoan, payload)
}

// RepaymentPosted creates a repayment.posted event
func RepaymentPosted(payload interface{}) Event {
	return NewEvent(EventTypePosted, EntityTypeRepayment, payload)
}

// SavingCreated creates a saving.created event
func SavingCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeSaving, payload)
}

// SavingDeposited creates a saving.deposited event
func SavingDeposited(payload interface{}) Event {
	return NewEvent(EventTypeDeposited, EntityTypeSaving, payload)
}

// ExpenseCreated creates an expense.created event
func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

// CollectionPosted creates a collection.posted event
func CollectionPosted(payload interface{}) Event {
	return NewEvent(EventTypePosted, EntityTypeCollection, payload)
}
