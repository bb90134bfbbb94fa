package order

import (
	"time"

	"store/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced   = "order.placed"
	EventOrderPaid     = "order.paid"
	EventOrderShipped  = "order.shipped"
	EventOrderCanceled = "order.canceled"

	EventDeliveryDelivered = "order.delivery_delivered"
)

type OrderPlacedEvent struct {
	shared.BaseEvent
	customerID string
	number     string
	total      decimal.Decimal
	items      int
}

func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent:  shared.NewBaseEvent(EventOrderPlaced, o.ID(), o.clock()),
		customerID: o.CustomerID(),
		number:     o.Number(),
		total:      o.Total(),
		items:      len(o.items),
	}
}

func (e *OrderPlacedEvent) Payload() map[string]any {
	return map[string]any{
		"order_id":    e.GetAggregateID(),
		"customer_id": e.customerID,
		"number":      e.number,
		"total":       e.total.String(),
		"items":       e.items,
	}
}

type OrderPaidEvent struct {
	shared.BaseEvent
}

func NewOrderPaidEvent(orderID string, at time.Time) *OrderPaidEvent {
	return &OrderPaidEvent{BaseEvent: shared.NewBaseEvent(EventOrderPaid, orderID, at)}
}

func (e *OrderPaidEvent) Payload() map[string]any {
	return map[string]any{"order_id": e.GetAggregateID()}
}

type OrderShippedEvent struct {
	shared.BaseEvent
	deliveries int
}

func NewOrderShippedEvent(orderID string, deliveries int, at time.Time) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseEvent:  shared.NewBaseEvent(EventOrderShipped, orderID, at),
		deliveries: deliveries,
	}
}

func (e *OrderShippedEvent) Deliveries() int { return e.deliveries }

func (e *OrderShippedEvent) Payload() map[string]any {
	return map[string]any{"order_id": e.GetAggregateID(), "deliveries": e.deliveries}
}

type OrderCanceledEvent struct {
	shared.BaseEvent
}

func NewOrderCanceledEvent(orderID string, at time.Time) *OrderCanceledEvent {
	return &OrderCanceledEvent{BaseEvent: shared.NewBaseEvent(EventOrderCanceled, orderID, at)}
}

func (e *OrderCanceledEvent) Payload() map[string]any {
	return map[string]any{"order_id": e.GetAggregateID()}
}

type DeliveryDeliveredEvent struct {
	shared.BaseEvent
	deliveryID string
}

func NewDeliveryDeliveredEvent(orderID, deliveryID string, at time.Time) *DeliveryDeliveredEvent {
	return &DeliveryDeliveredEvent{
		BaseEvent:  shared.NewBaseEvent(EventDeliveryDelivered, orderID, at),
		deliveryID: deliveryID,
	}
}

func (e *DeliveryDeliveredEvent) Payload() map[string]any {
	return map[string]any{"order_id": e.GetAggregateID(), "delivery_id": e.deliveryID}
}
