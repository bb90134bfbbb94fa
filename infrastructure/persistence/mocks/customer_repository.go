package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"store/domain/customer"
)

// MockCustomerRepository keeps customers in memory and enforces the same
// document and email uniqueness as the database indexes. Write calls are
// counted so tests can assert nothing was persisted.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*customer.Customer

	SaveCalls       int
	UpdateCalls     int
	DeleteCalls     int
	AddAddressCalls int

	// Err, when set, is returned by every method.
	Err error
}

func NewMockCustomerRepository(seed ...*customer.Customer) *MockCustomerRepository {
	r := &MockCustomerRepository{customers: make(map[string]*customer.Customer)}
	for _, c := range seed {
		r.customers[c.ID()] = clone(c, c.Addresses())
	}
	return r
}

// clone detaches stored state from the caller's aggregate.
func clone(c *customer.Customer, addresses []*customer.Address) *customer.Customer {
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:        c.ID(),
		FirstName: c.Name().FirstName(),
		LastName:  c.Name().LastName(),
		Document:  c.Document().Number(),
		Email:     c.Email().Address(),
		Phone:     c.Phone().Number(),
		Addresses: addresses,
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
	})
}

func (r *MockCustomerRepository) CustomerExists(_ context.Context, id string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.customers[id]
	return ok, nil
}

func (r *MockCustomerRepository) DocumentInUse(ctx context.Context, document string) (bool, error) {
	return r.DocumentInUseByOther(ctx, "", document)
}

func (r *MockCustomerRepository) DocumentInUseByOther(_ context.Context, id, document string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.documentTaken(id, document), nil
}

func (r *MockCustomerRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	return r.EmailInUseByOther(ctx, "", email)
}

func (r *MockCustomerRepository) EmailInUseByOther(_ context.Context, id, email string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(id, email), nil
}

func (r *MockCustomerRepository) documentTaken(exceptID, document string) bool {
	for _, c := range r.customers {
		if c.ID() != exceptID && c.Document().Number() == document {
			return true
		}
	}
	return false
}

// emailTaken compares case-insensitively, like the MySQL default collation.
func (r *MockCustomerRepository) emailTaken(exceptID, email string) bool {
	for _, c := range r.customers {
		if c.ID() != exceptID && strings.EqualFold(c.Email().Address(), email) {
			return true
		}
	}
	return false
}

func (r *MockCustomerRepository) Save(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	if r.documentTaken("", c.Document().Number()) || r.emailTaken("", c.Email().Address()) {
		return customer.NewDuplicateCustomerError(c.Document().Number(), c.Email().Address())
	}
	r.customers[c.ID()] = clone(c, c.Addresses())
	return nil
}

func (r *MockCustomerRepository) Update(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UpdateCalls++
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.customers[c.ID()]
	if !ok {
		return customer.NewCustomerNotFoundError(c.ID())
	}
	if r.documentTaken(c.ID(), c.Document().Number()) || r.emailTaken(c.ID(), c.Email().Address()) {
		return customer.NewDuplicateCustomerError(c.Document().Number(), c.Email().Address())
	}
	r.customers[c.ID()] = clone(c, stored.Addresses())
	return nil
}

func (r *MockCustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DeleteCalls++
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.customers[id]; !ok {
		return customer.NewCustomerNotFoundError(id)
	}
	delete(r.customers, id)
	return nil
}

func (r *MockCustomerRepository) AddAddress(_ context.Context, customerID string, a *customer.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.AddAddressCalls++
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.customers[customerID]
	if !ok {
		return customer.NewCustomerNotFoundError(customerID)
	}
	r.customers[customerID] = clone(stored, append(stored.Addresses(), a))
	return nil
}

func (r *MockCustomerRepository) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.NewCustomerNotFoundError(id)
	}
	return clone(c, c.Addresses()), nil
}

// All returns the stored customers ordered by name.
func (r *MockCustomerRepository) All() []*customer.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*customer.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, clone(c, c.Addresses()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name().String() < out[j].Name().String() })
	return out
}

var _ customer.Repository = (*MockCustomerRepository)(nil)
