package shared

import (
	"fmt"
	"time"
)

// DomainEvent is something that happened in the store worth telling other parts of the system.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// PayloadEvent is implemented by events that carry data for the outbox payload.
type PayloadEvent interface {
	DomainEvent
	Payload() map[string]any
}

// ValidateEvent rejects events the outbox cannot store.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}

// BaseEvent carries the fields common to every store event.
type BaseEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
}

func NewBaseEvent(name, aggregateID string, occurredOn time.Time) BaseEvent {
	return BaseEvent{name: name, aggregateID: aggregateID, occurredOn: occurredOn}
}

func (e BaseEvent) EventName() string      { return e.name }
func (e BaseEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e BaseEvent) GetAggregateID() string { return e.aggregateID }
