/*
Package customer is the customer subdomain: the Customer aggregate, its
self-validating value objects and its addresses.

Nothing here returns an error for a broken business rule. Every constructor
records notifications on the object it builds and the caller merges them.
*/
package customer

import (
	"time"

	"store/domain/shared"
	"store/pkg/notification"

	"github.com/google/uuid"
)

// Customer aggregate root. It owns its addresses.
type Customer struct {
	notification.Notifiable
	shared.EventRecorder

	id        string
	name      *Name
	document  *Document
	email     *Email
	phone     *Phone
	addresses []*Address
	version   int
	createdAt time.Time
}

// NewCustomer builds a customer with a fresh id and records a registration event.
func NewCustomer(name *Name, document *Document, email *Email, phone *Phone) *Customer {
	c := newCustomer(uuid.New().String(), name, document, email, phone)
	if c.IsValid() {
		c.Record(NewCustomerRegisteredEvent(c))
	}
	return c
}

// NewCustomerWithID builds a customer that keeps an existing id, as an update does.
func NewCustomerWithID(id string, name *Name, document *Document, email *Email, phone *Phone) *Customer {
	c := newCustomer(id, name, document, email, phone)
	if c.IsValid() {
		c.Record(NewCustomerUpdatedEvent(c))
	}
	return c
}

func newCustomer(id string, name *Name, document *Document, email *Email, phone *Phone) *Customer {
	c := &Customer{
		id:        id,
		name:      name,
		document:  document,
		email:     email,
		phone:     phone,
		createdAt: time.Now(),
	}
	c.validate()
	return c
}

// validate merges the constituents' notifications, then checks presence.
func (c *Customer) validate() {
	if c.name != nil {
		c.AddNotifications(c.name)
	}
	if c.document != nil {
		c.AddNotifications(c.document)
	}
	if c.email != nil {
		c.AddNotifications(c.email)
	}
	if c.phone != nil {
		c.AddNotifications(c.phone)
	}
	c.AddNotifications(notification.NewContract().
		IsTrue(c.name != nil, "CustomerContract.customer.Name", "name is required").
		IsTrue(c.document != nil, "CustomerContract.customer.Document", "document is required").
		IsTrue(c.email != nil, "CustomerContract.customer.Email", "email is required").
		IsTrue(c.phone != nil, "CustomerContract.customer.Phone", "phone is required"))
}

// AddAddress appends an address and merges its contract.
func (c *Customer) AddAddress(address *Address) {
	c.addresses = append(c.addresses, address)
	c.AddNotifications(address)
	if address.IsValid() {
		c.Record(NewAddressAddedEvent(c.id, address))
	}
}

// ============================================================================
// Getters
// ============================================================================

func (c *Customer) ID() string           { return c.id }
func (c *Customer) Name() *Name          { return c.name }
func (c *Customer) Document() *Document  { return c.document }
func (c *Customer) Email() *Email        { return c.email }
func (c *Customer) Phone() *Phone        { return c.phone }
func (c *Customer) Version() int         { return c.version }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

func (c *Customer) Addresses() []*Address {
	out := make([]*Address, len(c.addresses))
	copy(out, c.addresses)
	return out
}

func (c *Customer) String() string {
	if c.name == nil {
		return ""
	}
	return c.name.String()
}

// ReconstructionDTO carries stored state back into a Customer. Repository use only.
type ReconstructionDTO struct {
	ID        string
	FirstName string
	LastName  string
	Document  string
	Email     string
	Phone     string
	Addresses []*Address
	Version   int
	CreatedAt time.Time
}

// RebuildFromDTO restores a customer without recording events.
func RebuildFromDTO(dto ReconstructionDTO) *Customer {
	c := newCustomer(dto.ID,
		NewName(dto.FirstName, dto.LastName),
		NewDocument(dto.Document),
		NewEmail(dto.Email),
		NewPhone(dto.Phone))
	c.addresses = append(c.addresses, dto.Addresses...)
	c.version = dto.Version
	c.createdAt = dto.CreatedAt
	return c
}

var _ shared.AggregateRoot = (*Customer)(nil)
