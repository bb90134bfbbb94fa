package mocks

import (
	"context"
	"sort"
	"sync"

	"store/domain/order"
)

// MockOrderRepository keeps detached copies of orders and applies the same
// optimistic version check as the gorm repository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order

	SaveCalls int
	Err       error
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*order.Order)}
}

func cloneOrder(o *order.Order) *order.Order {
	deliveries := make([]*order.Delivery, 0, len(o.Deliveries()))
	for _, d := range o.Deliveries() {
		deliveries = append(deliveries, order.RebuildDelivery(d.ID(), d.CreateDate(), d.EstimatedDeliveryDate(), d.Status()))
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Number:     o.Number(),
		CreateDate: o.CreateDate(),
		Status:     o.Status(),
		Items:      o.Items(),
		Deliveries: deliveries,
		Version:    o.Version(),
	})
}

func (r *MockOrderRepository) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}

	stored, exists := r.orders[o.ID()]
	switch {
	case o.Version() == 0 && exists, o.Version() != 0 && !exists:
		return order.NewConcurrentModificationError(o.ID())
	case exists && stored.Version() != o.Version():
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	r.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r *MockOrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return cloneOrder(o), nil
}

// FindByCustomerID returns the customer's orders, oldest first.
func (r *MockOrderRepository) FindByCustomerID(_ context.Context, customerID string) ([]*order.Order, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*order.Order
	for _, o := range r.orders {
		if o.CustomerID() == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateDate().Before(out[j].CreateDate()) })
	return out, nil
}

var _ order.Repository = (*MockOrderRepository)(nil)
