package order

import "context"

// Repository persists Order aggregates.
type Repository interface {
	// Save inserts when Version() is zero and does an optimistic update otherwise.
	// Items are written on insert only; deliveries are upserted.
	Save(ctx context.Context, order *Order) error

	// FindByID returns an error matching ErrOrderNotFound when missing.
	FindByID(ctx context.Context, id string) (*Order, error)

	FindByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
}
