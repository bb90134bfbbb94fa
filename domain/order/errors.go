package order

import (
	"errors"

	"store/domain/shared"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")
	ErrAlreadyShipped         = errors.New("order already has deliveries")
	ErrDeliveryNotFound       = errors.New("delivery not found")
)

func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		kind:     ErrOrderNotFound,
		sentinel: shared.ErrNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		kind:     ErrConcurrentModification,
		sentinel: shared.ErrConflict,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

func NewAlreadyShippedError(orderID string) error {
	return &orderDomainError{
		kind:     ErrAlreadyShipped,
		sentinel: shared.ErrInvalidState,
		message:  "order " + orderID + " has already been shipped",
		stack:    shared.CaptureStack(3),
	}
}

func NewDeliveryNotFoundError(orderID, deliveryID string) error {
	return &orderDomainError{
		kind:     ErrDeliveryNotFound,
		sentinel: shared.ErrNotFound,
		message:  "delivery " + deliveryID + " not found in order " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

type orderDomainError struct {
	kind     error
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string   { return e.message }
func (e *orderDomainError) Unwrap() []error { return []error{e.kind, e.sentinel} }
func (e *orderDomainError) Stack() []string { return shared.FormatStack(e.stack) }
