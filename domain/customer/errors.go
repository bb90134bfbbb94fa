package customer

import (
	"errors"

	"store/domain/shared"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateCustomer is raised by storage when the unique index on
	// document or email rejects a write that passed the pre-checks.
	ErrDuplicateCustomer = errors.New("document or email already in use")
)

func NewCustomerNotFoundError(id string) error {
	return &customerDomainError{
		kind:     ErrCustomerNotFound,
		sentinel: shared.ErrNotFound,
		message:  "customer not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

// NewDuplicateCustomerError also matches shared.ErrConflict.
func NewDuplicateCustomerError(document, email string) error {
	return &customerDomainError{
		kind:     ErrDuplicateCustomer,
		sentinel: shared.ErrConflict,
		message:  "document " + document + " or email " + email + " already in use",
		stack:    shared.CaptureStack(3),
	}
}

// customerDomainError matches both its own kind and the shared sentinel.
type customerDomainError struct {
	kind     error
	sentinel error
	message  string
	stack    []uintptr
}

func (e *customerDomainError) Error() string   { return e.message }
func (e *customerDomainError) Unwrap() []error { return []error{e.kind, e.sentinel} }
func (e *customerDomainError) Stack() []string { return shared.FormatStack(e.stack) }
