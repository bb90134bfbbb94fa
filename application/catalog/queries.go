// Package catalog exposes the product catalog to the API.
package catalog

import (
	"context"

	"store/domain/catalog"

	"github.com/shopspring/decimal"
)

type ProductPayload struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Price          decimal.Decimal `json:"price"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
}

type Queries struct {
	products catalog.Repository
}

func NewQueries(products catalog.Repository) *Queries {
	if products == nil {
		panic("catalog: NewQueries requires a product repository")
	}
	return &Queries{products: products}
}

func (q *Queries) List(ctx context.Context) ([]ProductPayload, error) {
	products, err := q.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductPayload, 0, len(products))
	for _, p := range products {
		out = append(out, toPayload(p))
	}
	return out, nil
}

// Get reports a missing product with shared.ErrNotFound.
func (q *Queries) Get(ctx context.Context, id string) (*ProductPayload, error) {
	p, err := q.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payload := toPayload(p)
	return &payload, nil
}

func toPayload(p *catalog.Product) ProductPayload {
	return ProductPayload{
		ID:             p.ID(),
		Title:          p.Title(),
		Description:    p.Description(),
		ImageURL:       p.ImageURL(),
		Price:          p.Price(),
		QuantityOnHand: p.QuantityOnHand(),
	}
}
