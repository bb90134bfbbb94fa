/*
Package order is the order subdomain: the Order aggregate, its items and the
deliveries it is shipped in.

The lifecycle is a plain imperative state machine. Transitions never fail;
the only rules enforced here are the item stock contract when an item is added
and the "at least one item" contract when the order is placed. Sequencing
(for example shipping only once) belongs to the caller.
*/
package order

import (
	"strings"
	"time"

	"store/domain/shared"
	"store/pkg/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the order status. Shipping is visible through deliveries, not here.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusPaid     Status = "PAID"
	StatusCanceled Status = "CANCELED"
)

const (
	// MaxItemsPerDelivery is the batch size Ship partitions items into.
	MaxItemsPerDelivery = 5

	FullBatchLeadTime    = 5 * 24 * time.Hour
	PartialBatchLeadTime = 6 * 24 * time.Hour

	numberLength = 8
)

// Clock is injected so tests can pin "now".
type Clock func() time.Time

type Option func(*Order)

func WithClock(clock Clock) Option {
	return func(o *Order) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Order aggregate root. The customer is referenced by id.
type Order struct {
	notification.Notifiable
	shared.EventRecorder

	id         string
	customerID string
	number     string
	createDate time.Time
	status     Status
	items      []*OrderItem
	deliveries []*Delivery
	version    int
	clock      Clock
}

// ============================================================================
// Factory
// ============================================================================

// New creates an order for the customer with status Created and no items.
func New(customerID string, opts ...Option) *Order {
	o := &Order{
		id:         uuid.New().String(),
		customerID: customerID,
		status:     StatusCreated,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.createDate = o.clock()
	o.AddNotifications(notification.NewContract().
		IsNotEmpty(customerID, "OrderContract.customer", "customer is required"))
	return o
}

// ============================================================================
// Lifecycle
// ============================================================================

// AddItem appends the item and merges its stock contract. The whole order is
// not re-validated here.
func (o *Order) AddItem(item *OrderItem) {
	o.items = append(o.items, item)
	o.AddNotifications(item)
}

// PlaceOrder checks the order has items and, if so, assigns an 8-character
// upper-case number taken from a random UUID. Numbers are not checked for
// collisions.
func (o *Order) PlaceOrder() {
	contract := notification.NewContract().
		IsTrue(len(o.items) > 0, "OrderContract.order", "order has no items")
	o.AddNotifications(contract)
	if !contract.IsValid() {
		return
	}

	o.number = newOrderNumber()
	o.Record(NewOrderPlacedEvent(o))
}

func newOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(hex[:numberLength])
}

// Pay marks the order paid. An order without items can be paid.
func (o *Order) Pay() {
	o.status = StatusPaid
	o.Record(NewOrderPaidEvent(o.id, o.clock()))
}

// Ship splits the current items into consecutive batches of MaxItemsPerDelivery
// in list order. Each full batch becomes a delivery due in five days; a trailing
// partial batch becomes one due in six. New deliveries are shipped immediately
// and appended. Calling Ship twice duplicates deliveries.
func (o *Order) Ship() {
	now := o.clock()
	var created []*Delivery

	batch := 0
	for range o.items {
		batch++
		if batch == MaxItemsPerDelivery {
			created = append(created, NewDelivery(now, now.Add(FullBatchLeadTime)))
			batch = 0
		}
	}
	if batch > 0 {
		created = append(created, NewDelivery(now, now.Add(PartialBatchLeadTime)))
	}

	for _, d := range created {
		d.Ship()
	}
	o.deliveries = append(o.deliveries, created...)

	if len(created) > 0 {
		o.Record(NewOrderShippedEvent(o.id, len(created), now))
	}
}

// Deliver marks one delivery delivered and reports false when the order has no
// delivery with that id. The delivery's current status is not checked.
func (o *Order) Deliver(deliveryID string) bool {
	d := o.Delivery(deliveryID)
	if d == nil {
		return false
	}
	d.Deliver()
	o.Record(NewDeliveryDeliveredEvent(o.id, deliveryID, o.clock()))
	return true
}

// Cancel marks the order canceled and cancels every delivery not yet delivered.
func (o *Order) Cancel() {
	o.status = StatusCanceled
	for _, d := range o.deliveries {
		d.Cancel()
	}
	o.Record(NewOrderCanceledEvent(o.id, o.clock()))
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string            { return o.id }
func (o *Order) CustomerID() string    { return o.customerID }
func (o *Order) Number() string        { return o.number }
func (o *Order) CreateDate() time.Time { return o.createDate }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Version() int          { return o.version }

// IsPlaced reports whether a number has been assigned.
func (o *Order) IsPlaced() bool { return o.number != "" }

func (o *Order) Items() []*OrderItem {
	out := make([]*OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Deliveries() []*Delivery {
	out := make([]*Delivery, len(o.deliveries))
	copy(out, o.deliveries)
	return out
}

// Delivery returns the delivery with the given id, or nil.
func (o *Order) Delivery(id string) *Delivery {
	for _, d := range o.deliveries {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// Total sums price times quantity over the items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IncrementVersionForSave is called by repositories after a successful optimistic update.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// ============================================================================
// Reconstruction
// ============================================================================

// ReconstructionDTO carries stored state back into an Order. Repository use only.
type ReconstructionDTO struct {
	ID         string
	CustomerID string
	Number     string
	CreateDate time.Time
	Status     Status
	Items      []*OrderItem
	Deliveries []*Delivery
	Version    int
}

// RebuildFromDTO restores an order. Item notifications are not replayed.
func RebuildFromDTO(dto ReconstructionDTO, opts ...Option) *Order {
	o := &Order{
		id:         dto.ID,
		customerID: dto.CustomerID,
		number:     dto.Number,
		createDate: dto.CreateDate,
		status:     dto.Status,
		items:      append([]*OrderItem(nil), dto.Items...),
		deliveries: append([]*Delivery(nil), dto.Deliveries...),
		version:    dto.Version,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var _ shared.AggregateRoot = (*Order)(nil)
