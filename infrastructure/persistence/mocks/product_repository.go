package mocks

import (
	"context"
	"sort"
	"sync"

	"store/domain/catalog"
	"store/domain/shared"

	"github.com/shopspring/decimal"
)

type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product
}

func NewMockProductRepository(seed ...*catalog.Product) *MockProductRepository {
	r := &MockProductRepository{products: make(map[string]*catalog.Product)}
	for _, p := range seed {
		r.products[p.ID()] = p
	}
	return r
}

// SampleProducts is the catalog the server starts with in mock mode.
func SampleProducts() []*catalog.Product {
	return []*catalog.Product{
		catalog.RebuildProduct("7f2c1e3a-4b5d-4c6e-8f90-a1b2c3d4e5f6", "Keyboard", "Mechanical keyboard",
			"https://store.io/img/keyboard.png", decimal.RequireFromString("349.90"), decimal.NewFromInt(25)),
		catalog.RebuildProduct("0a9b8c7d-6e5f-4a3b-9c2d-1e0f9a8b7c6d", "Mouse", "Wireless mouse",
			"https://store.io/img/mouse.png", decimal.RequireFromString("129.90"), decimal.NewFromInt(50)),
		catalog.RebuildProduct("5d4c3b2a-1f0e-4d9c-8b7a-6f5e4d3c2b1a", "Chair", "Office chair",
			"https://store.io/img/chair.png", decimal.RequireFromString("1299.00"), decimal.NewFromInt(3)),
	}
}

func (r *MockProductRepository) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.NewNotFoundError("product", id)
	}
	return p, nil
}

func (r *MockProductRepository) FindByIDs(_ context.Context, ids []string) (map[string]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// List orders by title.
func (r *MockProductRepository) List(_ context.Context) ([]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title() < out[j].Title() })
	return out, nil
}

func (r *MockProductRepository) Save(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID()] = p
	return nil
}

var _ catalog.Repository = (*MockProductRepository)(nil)
