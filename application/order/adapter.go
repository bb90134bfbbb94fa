package order

import (
	"context"

	"store/domain/catalog"
)

// productLookup adapts catalog.Repository to the id-keyed map the order
// domain service composes from.
type productLookup struct {
	products catalog.Repository
}

func (l productLookup) forLines(ctx context.Context, items []PlaceOrderLine) (map[string]*catalog.Product, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return l.products.FindByIDs(ctx, ids)
}
