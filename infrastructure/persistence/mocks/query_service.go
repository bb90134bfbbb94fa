package mocks

import (
	"context"
	"errors"

	"store/domain/customer"
)

// MockQueryService answers customer queries from the mock repositories.
type MockQueryService struct {
	customers *MockCustomerRepository
	orders    *MockOrderRepository
}

func NewMockQueryService(customers *MockCustomerRepository, orders *MockOrderRepository) *MockQueryService {
	return &MockQueryService{customers: customers, orders: orders}
}

func (q *MockQueryService) ListCustomers(_ context.Context) ([]customer.ListItem, error) {
	all := q.customers.All()
	out := make([]customer.ListItem, 0, len(all))
	for _, c := range all {
		out = append(out, customer.ListItem{
			ID:       c.ID(),
			Name:     c.Name().String(),
			Email:    c.Email().Address(),
			Document: c.Document().Number(),
		})
	}
	return out, nil
}

func (q *MockQueryService) GetCustomer(ctx context.Context, id string) (*customer.Detail, error) {
	c, err := q.customers.FindByID(ctx, id)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := &customer.Detail{
		ID:        c.ID(),
		Name:      c.Name().String(),
		Email:     c.Email().Address(),
		Document:  c.Document().Number(),
		Phone:     c.Phone().Number(),
		Addresses: []customer.AddressDetail{},
	}
	for _, a := range c.Addresses() {
		d.Addresses = append(d.Addresses, customer.AddressDetail{
			ID:           a.ID(),
			Street:       a.Street(),
			Number:       a.Number(),
			Neighborhood: a.Neighborhood(),
			Complement:   a.Complement(),
			City:         a.City(),
			State:        a.State(),
			Country:      a.Country(),
			ZipCode:      a.ZipCode(),
			Type:         string(a.Type()),
		})
	}
	return d, nil
}

func (q *MockQueryService) ListOrders(ctx context.Context, customerID string) ([]customer.OrderSummary, error) {
	c, err := q.customers.FindByID(ctx, customerID)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return []customer.OrderSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	orders, err := q.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]customer.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, customer.OrderSummary{
			ID:       c.ID(),
			Name:     c.Name().String(),
			Document: c.Document().Number(),
			Email:    c.Email().Address(),
			OrderID:  o.ID(),
			Total:    o.Total(),
		})
	}
	return out, nil
}

func (q *MockQueryService) CountOrders(ctx context.Context, document string) (*customer.OrdersCount, error) {
	for _, c := range q.customers.All() {
		if c.Document().Number() != document {
			continue
		}
		orders, err := q.orders.FindByCustomerID(ctx, c.ID())
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			return nil, nil
		}
		return &customer.OrdersCount{
			ID:       c.ID(),
			Name:     c.Name().String(),
			Document: c.Document().Number(),
			Orders:   int64(len(orders)),
		}, nil
	}
	return nil, nil
}

var _ customer.QueryService = (*MockQueryService)(nil)
