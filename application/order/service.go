/*
Package order orchestrates the order lifecycle.

PlaceOrder follows the same notification protocol as the customer handlers:
a rejected order is a failed command.Result and nothing is written. The
lifecycle transitions (pay, ship, cancel) act on an existing order, so a
missing order or a refused transition is an error matching shared.ErrNotFound
or shared.ErrInvalidState.

Every write goes through a unit of work. The order is loaded inside it, so a
retry after an optimistic-lock conflict works on fresh state and the order's
events reach the outbox with the order itself.
*/
package order

import (
	"context"
	"fmt"

	"store/application/command"
	"store/domain/catalog"
	"store/domain/customer"
	"store/domain/order"
	"store/domain/shared"
	"store/pkg/metrics"
	"store/pkg/notification"
)

const MessagePlaced = "order placed successfully"

type Option func(*ApplicationService)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ApplicationService) { s.metrics = m }
}

// WithClock fixes the time new orders and deliveries are stamped with.
func WithClock(clock order.Clock) Option {
	return func(s *ApplicationService) { s.clock = clock }
}

type ApplicationService struct {
	orders     order.Repository
	customers  customer.Repository
	products   productLookup
	uowFactory shared.UnitOfWorkFactory
	metrics    *metrics.Metrics
	clock      order.Clock
	domain     *order.DomainService
}

func NewApplicationService(
	orders order.Repository,
	customers customer.Repository,
	products catalog.Repository,
	uowFactory shared.UnitOfWorkFactory,
	opts ...Option,
) *ApplicationService {
	if orders == nil || customers == nil || products == nil || uowFactory == nil {
		panic("order: NewApplicationService requires every repository and a unit of work factory")
	}
	s := &ApplicationService{
		orders:     orders,
		customers:  customers,
		products:   productLookup{products: products},
		uowFactory: uowFactory,
	}
	for _, opt := range opts {
		opt(s)
	}
	var orderOpts []order.Option
	if s.clock != nil {
		orderOpts = append(orderOpts, order.WithClock(s.clock))
	}
	s.domain = order.NewDomainService(orderOpts...)
	return s
}

// PlaceOrder builds the order from the catalog and persists it when the
// command, the customer, every item and the order contract are valid.
func (s *ApplicationService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*command.Result[OrderPayload], error) {
	var n notification.Notifiable

	n.AddNotifications(cmd.Validate())
	if !n.IsValid() {
		s.metrics.CommandRejected("place_order")
		return command.Invalid[OrderPayload](&n), nil
	}

	exists, err := s.customers.CustomerExists(ctx, cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		n.AddNotification("PlaceOrderCommand.Customer", "customer not found")
	}

	products, err := s.products.forLines(ctx, cmd.Items)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	lines := toLines(cmd.Items)
	n.AddNotifications(s.domain.Compose(cmd.CustomerID, lines, products))

	if !n.IsValid() {
		s.metrics.CommandRejected("place_order")
		return command.Invalid[OrderPayload](&n), nil
	}

	// Each attempt saves a freshly composed order; a rolled back attempt
	// leaves its order at version 1 with its events already pulled.
	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o = s.domain.Compose(cmd.CustomerID, lines, products)
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.metrics.OrderPlaced()
	return command.Succeeded(MessagePlaced, toOrderPayload(o)), nil
}

func (s *ApplicationService) Pay(ctx context.Context, orderID string) (*OrderPayload, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		if o.Status() == order.StatusCanceled {
			return shared.NewInvalidStateError("order", "a canceled order cannot be paid")
		}
		o.Pay()
		return nil
	})
}

// Ship refuses an order that already has deliveries; shipping twice would
// duplicate them.
func (s *ApplicationService) Ship(ctx context.Context, orderID string) (*OrderPayload, error) {
	shipped := 0
	payload, err := s.transition(ctx, orderID, func(o *order.Order) error {
		if len(o.Deliveries()) > 0 {
			return order.NewAlreadyShippedError(o.ID())
		}
		if o.Status() == order.StatusCanceled {
			return shared.NewInvalidStateError("order", "a canceled order cannot be shipped")
		}
		o.Ship()
		shipped = len(o.Deliveries())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.DeliveriesShipped(shipped)
	return payload, nil
}

func (s *ApplicationService) Cancel(ctx context.Context, orderID string) (*OrderPayload, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		o.Cancel()
		return nil
	})
}

// Deliver marks one shipped delivery of the order delivered.
func (s *ApplicationService) Deliver(ctx context.Context, orderID, deliveryID string) (*OrderPayload, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		d := o.Delivery(deliveryID)
		if d == nil {
			return order.NewDeliveryNotFoundError(o.ID(), deliveryID)
		}
		if d.Status() != order.DeliveryShipped {
			return shared.NewInvalidStateError("delivery", "only a shipped delivery can be delivered")
		}
		o.Deliver(deliveryID)
		return nil
	})
}

func (s *ApplicationService) Get(ctx context.Context, orderID string) (*OrderPayload, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payload := toOrderPayload(o)
	return &payload, nil
}

func (s *ApplicationService) ListByCustomer(ctx context.Context, customerID string) ([]OrderPayload, error) {
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderPayload, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderPayload(o))
	}
	return out, nil
}

// transition loads, mutates and saves the order in one unit of work.
func (s *ApplicationService) transition(ctx context.Context, orderID string, mutate func(*order.Order) error) (*OrderPayload, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := mutate(o); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	payload := toOrderPayload(o)
	return &payload, nil
}
