/*
Package shared holds the building blocks every store subdomain relies on:
aggregate and entity contracts, domain events, domain errors and the unit of
work boundary.
*/
package shared

// AggregateRoot is the consistency boundary persisted as a whole.
// Repositories save aggregates; the unit of work drains their events into the outbox.
type AggregateRoot interface {
	ID() string

	// Version is the optimistic lock counter. Zero means never persisted.
	Version() int

	// PullEvents returns the recorded events and clears them.
	PullEvents() []DomainEvent
}

// Entity has identity inside an aggregate.
type Entity interface {
	ID() string
}

// EventRecorder is embedded by aggregates to buffer domain events until the
// unit of work collects them.
type EventRecorder struct {
	events []DomainEvent
}

// Record buffers an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents returns the buffered events and clears the buffer.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := make([]DomainEvent, len(r.events))
	copy(events, r.events)
	r.events = nil
	return events
}
