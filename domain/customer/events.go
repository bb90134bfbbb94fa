package customer

import (
	"time"

	"store/domain/shared"
)

const (
	EventCustomerRegistered = "customer.registered"
	EventCustomerUpdated    = "customer.updated"
	EventAddressAdded       = "customer.address_added"
)

type CustomerRegisteredEvent struct {
	shared.BaseEvent
	name     string
	email    string
	document string
}

func NewCustomerRegisteredEvent(c *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseEvent: shared.NewBaseEvent(EventCustomerRegistered, c.ID(), time.Now()),
		name:      c.String(),
		email:     c.Email().Address(),
		document:  c.Document().Number(),
	}
}

func (e *CustomerRegisteredEvent) Payload() map[string]any {
	return map[string]any{
		"customer_id": e.GetAggregateID(),
		"name":        e.name,
		"email":       e.email,
		"document":    e.document,
	}
}

type CustomerUpdatedEvent struct {
	shared.BaseEvent
	email string
}

func NewCustomerUpdatedEvent(c *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(EventCustomerUpdated, c.ID(), time.Now()),
		email:     c.Email().Address(),
	}
}

func (e *CustomerUpdatedEvent) Payload() map[string]any {
	return map[string]any{"customer_id": e.GetAggregateID(), "email": e.email}
}

type AddressAddedEvent struct {
	shared.BaseEvent
	addressID   string
	addressType AddressType
}

func NewAddressAddedEvent(customerID string, a *Address) *AddressAddedEvent {
	return &AddressAddedEvent{
		BaseEvent:   shared.NewBaseEvent(EventAddressAdded, customerID, time.Now()),
		addressID:   a.ID(),
		addressType: a.Type(),
	}
}

func (e *AddressAddedEvent) Payload() map[string]any {
	return map[string]any{
		"customer_id": e.GetAggregateID(),
		"address_id":  e.addressID,
		"type":        string(e.addressType),
	}
}
