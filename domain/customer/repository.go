package customer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository persists customers and answers the uniqueness questions the
// handlers ask before writing. The checks are not atomic with the write;
// implementations must back document and email with unique indexes and
// report a violation as ErrDuplicateCustomer.
type Repository interface {
	CustomerExists(ctx context.Context, id string) (bool, error)
	DocumentInUse(ctx context.Context, document string) (bool, error)
	// DocumentInUseByOther ignores the customer with the given id.
	DocumentInUseByOther(ctx context.Context, id, document string) (bool, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	EmailInUseByOther(ctx context.Context, id, email string) (bool, error)

	// Save inserts the customer with its addresses.
	Save(ctx context.Context, c *Customer) error
	// Update overwrites name, document, email and phone. Addresses are untouched.
	Update(ctx context.Context, c *Customer) error
	// Delete returns ErrCustomerNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	AddAddress(ctx context.Context, customerID string, a *Address) error

	FindByID(ctx context.Context, id string) (*Customer, error)
}

// EmailService sends transactional mail. Callers treat it as best effort.
type EmailService interface {
	Send(ctx context.Context, to, from, subject, body string) error
}

// ============================================================================
// Read side
// ============================================================================

// QueryService serves read projections. It never returns aggregates.
type QueryService interface {
	ListCustomers(ctx context.Context) ([]ListItem, error)
	// GetCustomer returns nil, nil when the customer does not exist.
	GetCustomer(ctx context.Context, id string) (*Detail, error)
	ListOrders(ctx context.Context, customerID string) ([]OrderSummary, error)
	// CountOrders returns nil, nil when no customer with orders has that document.
	CountOrders(ctx context.Context, document string) (*OrdersCount, error)
}

type ListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

type Detail struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Document  string          `json:"document"`
	Phone     string          `json:"phone"`
	Addresses []AddressDetail `json:"addresses"`
}

type AddressDetail struct {
	ID           string `json:"id"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zip_code"`
	Type         string `json:"type"`
}

// OrderSummary is one order of a customer with its total, price times quantity summed over items.
type OrderSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Document string          `json:"document"`
	Email    string          `json:"email"`
	OrderID  string          `json:"order_id"`
	Total    decimal.Decimal `json:"total"`
}

type OrdersCount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Orders   int64  `json:"orders"`
}
