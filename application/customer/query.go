package customer

import (
	"context"

	"store/domain/customer"
	"store/domain/shared"
	"store/pkg/document"
)

// Queries is the read side. Unlike the handlers it reports a missing customer
// as an error matching shared.ErrNotFound, since there is nothing to validate.
type Queries struct {
	qs customer.QueryService
}

func NewQueries(qs customer.QueryService) *Queries {
	if qs == nil {
		panic("customer: NewQueries requires a query service")
	}
	return &Queries{qs: qs}
}

func (q *Queries) List(ctx context.Context) ([]customer.ListItem, error) {
	items, err := q.qs.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []customer.ListItem{}
	}
	return items, nil
}

func (q *Queries) Get(ctx context.Context, id string) (*customer.Detail, error) {
	d, err := q.qs.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, customer.NewCustomerNotFoundError(id)
	}
	return d, nil
}

// Orders lists the customer's orders with their totals. A customer without
// orders gets an empty list.
func (q *Queries) Orders(ctx context.Context, customerID string) ([]customer.OrderSummary, error) {
	orders, err := q.qs.ListOrders(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []customer.OrderSummary{}
	}
	return orders, nil
}

// OrdersCount looks the customer up by document, punctuation allowed.
func (q *Queries) OrdersCount(ctx context.Context, doc string) (*customer.OrdersCount, error) {
	digits := document.OnlyDigits(doc)
	count, err := q.qs.CountOrders(ctx, digits)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, shared.NewNotFoundError("customer orders", digits)
	}
	return count, nil
}
