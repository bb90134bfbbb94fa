/*
Package customer orchestrates the customer write commands.

Every handler method follows the same protocol: normalise the input, ask the
repository the uniqueness questions, build the value objects and the
aggregate, and merge every notification into one list. If the list is not
empty nothing is written and the caller gets a failed command.Result. Only
then is the repository called, inside a unit of work so the aggregate's
events reach the outbox in the same transaction.

Errors returned next to a nil result are infrastructure failures, never
broken business rules.
*/
package customer

import (
	"context"
	"errors"
	"fmt"

	"store/application/command"
	"store/domain/customer"
	"store/domain/shared"
	"store/pkg/document"
	"store/pkg/logger"
	"store/pkg/metrics"
	"store/pkg/notification"

	"go.uber.org/zap"
)

const (
	MessageCreated = "welcome to the store"
	MessageUpdated = "data updated successfully"
	MessageDeleted = "record removed successfully"
	MessageAddress = "address added successfully"
)

// MailConfig is the welcome message sent after a customer is created.
type MailConfig struct {
	From    string
	Subject string
	Body    string
}

var defaultMail = MailConfig{
	From:    "hello@store.io",
	Subject: "Welcome to the store",
	Body:    "Your account has been created. Welcome!",
}

// ReadModelInvalidator drops cached projections of a customer after a write.
type ReadModelInvalidator interface {
	Invalidate(ctx context.Context, customerID string) error
}

// Option configures a Handler built by NewHandler.
type Option func(*Handler)

// WithMailConfig replaces the welcome email sent after a customer is created.
func WithMailConfig(cfg MailConfig) Option {
	return func(h *Handler) { h.mail = cfg }
}

// WithMetrics records customer commands on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithInvalidator drops cached read models after every committed write.
func WithInvalidator(inv ReadModelInvalidator) Option {
	return func(h *Handler) { h.invalidator = inv }
}

// Handler keeps no per-request state; one value serves concurrent requests.
type Handler struct {
	repo        customer.Repository
	email       customer.EmailService
	uowFactory  shared.UnitOfWorkFactory
	mail        MailConfig
	metrics     *metrics.Metrics
	invalidator ReadModelInvalidator
}

// NewHandler panics on a nil collaborator.
func NewHandler(repo customer.Repository, email customer.EmailService, uowFactory shared.UnitOfWorkFactory, opts ...Option) *Handler {
	if repo == nil || email == nil || uowFactory == nil {
		panic("customer: NewHandler requires a repository, an email service and a unit of work factory")
	}
	h := &Handler{repo: repo, email: email, uowFactory: uowFactory, mail: defaultMail}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CustomerPayload echoes the persisted customer.
type CustomerPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
}

type DeletedPayload struct {
	ID string `json:"id"`
}

type AddressPayload struct {
	CustomerID string `json:"customer_id"`
	ID         string `json:"id"`
	Address    string `json:"address"`
	Type       string `json:"type"`
}

func toPayload(c *customer.Customer) CustomerPayload {
	return CustomerPayload{
		ID:       c.ID(),
		Name:     c.Name().String(),
		Email:    c.Email().Address(),
		Document: c.Document().Number(),
		Phone:    c.Phone().Number(),
	}
}

// HandleCreate registers a new customer and sends the welcome email.
func (h *Handler) HandleCreate(ctx context.Context, cmd CreateCustomerCommand) (*command.Result[CustomerPayload], error) {
	var n notification.Notifiable
	doc := document.OnlyDigits(cmd.Document)

	inUse, err := h.repo.DocumentInUse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if inUse {
		n.AddNotification("CheckDocument.Document", "document already in use")
	}

	inUse, err = h.repo.EmailInUse(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if inUse {
		n.AddNotification("CheckEmail.Email", "email already in use")
	}

	c := customer.NewCustomer(
		customer.NewName(cmd.FirstName, cmd.LastName),
		customer.NewDocument(doc),
		customer.NewEmail(cmd.Email),
		customer.NewPhone(cmd.Phone))
	n.AddNotifications(c)

	if !n.IsValid() {
		return reject[CustomerPayload](h.metrics, "create_customer", &n), nil
	}

	uow := h.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := h.repo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterNew(c)
		return nil
	})
	if errors.Is(err, customer.ErrDuplicateCustomer) {
		n.AddNotification("Save.Customer", "document or email already in use")
		return reject[CustomerPayload](h.metrics, "create_customer", &n), nil
	}
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	h.metrics.CustomerCreated()
	h.sendWelcome(ctx, c)

	return command.Succeeded(MessageCreated, toPayload(c)), nil
}

// HandleUpdate overwrites name, document, email and phone of an existing customer.
func (h *Handler) HandleUpdate(ctx context.Context, cmd UpdateCustomerCommand) (*command.Result[CustomerPayload], error) {
	var n notification.Notifiable
	doc := document.OnlyDigits(cmd.Document)

	exists, err := h.repo.CustomerExists(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		n.AddNotification("CheckCustomer.Id", "customer not found")
	}

	inUse, err := h.repo.DocumentInUseByOther(ctx, cmd.ID, doc)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if inUse {
		n.AddNotification("CheckDocument.Document", "document already in use")
	}

	inUse, err = h.repo.EmailInUseByOther(ctx, cmd.ID, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if inUse {
		n.AddNotification("CheckEmail.Email", "email already in use")
	}

	c := customer.NewCustomerWithID(cmd.ID,
		customer.NewName(cmd.FirstName, cmd.LastName),
		customer.NewDocument(doc),
		customer.NewEmail(cmd.Email),
		customer.NewPhone(cmd.Phone))
	n.AddNotifications(c)

	if !n.IsValid() {
		return reject[CustomerPayload](h.metrics, "update_customer", &n), nil
	}

	uow := h.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := h.repo.Update(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		n.AddNotification("CheckCustomer.Id", "customer not found")
		return reject[CustomerPayload](h.metrics, "update_customer", &n), nil
	case errors.Is(err, customer.ErrDuplicateCustomer):
		n.AddNotification("Save.Customer", "document or email already in use")
		return reject[CustomerPayload](h.metrics, "update_customer", &n), nil
	case err != nil:
		return nil, fmt.Errorf("update customer: %w", err)
	}

	h.invalidate(ctx, c.ID())
	return command.Succeeded(MessageUpdated, toPayload(c)), nil
}

// HandleDelete removes a customer and its addresses. A missing customer is a
// notification, not an error.
func (h *Handler) HandleDelete(ctx context.Context, cmd *DeleteCommand) (*command.Result[DeletedPayload], error) {
	var n notification.Notifiable

	if !cmd.IsValid() {
		n.AddNotification("DeleteCustomer.Id", "customer not found")
	}
	n.AddNotifications(cmd)
	if !n.IsValid() {
		return reject[DeletedPayload](h.metrics, "delete_customer", &n), nil
	}

	err := h.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		return h.repo.Delete(ctx, cmd.ID)
	})
	if errors.Is(err, customer.ErrCustomerNotFound) {
		n.AddNotification("DeleteCustomer.Id", "customer not found")
		return reject[DeletedPayload](h.metrics, "delete_customer", &n), nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete customer: %w", err)
	}

	h.invalidate(ctx, cmd.ID)
	return command.Succeeded(MessageDeleted, DeletedPayload{ID: cmd.ID}), nil
}

// HandleAddAddress attaches a shipping or billing address to an existing customer.
func (h *Handler) HandleAddAddress(ctx context.Context, cmd AddAddressCommand) (*command.Result[AddressPayload], error) {
	var n notification.Notifiable

	c, err := h.repo.FindByID(ctx, cmd.CustomerID)
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		n.AddNotification("CheckCustomer.Id", "customer not found")
	case err != nil:
		return nil, fmt.Errorf("load customer: %w", err)
	}

	addressType, err := customer.ParseAddressType(cmd.Type)
	if err != nil {
		n.AddNotification("AddAddressCommand.Type", "address type must be SHIPPING or BILLING")
	}

	address := customer.NewAddress(customer.AddressFields{
		Street:       cmd.Street,
		Number:       cmd.Number,
		Neighborhood: cmd.Neighborhood,
		Complement:   cmd.Complement,
		City:         cmd.City,
		State:        cmd.State,
		Country:      cmd.Country,
		ZipCode:      cmd.ZipCode,
		Type:         addressType,
	})
	if c != nil {
		c.AddAddress(address)
		n.AddNotifications(c)
	} else {
		n.AddNotifications(address)
	}

	if !n.IsValid() {
		return reject[AddressPayload](h.metrics, "add_address", &n), nil
	}

	uow := h.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := h.repo.AddAddress(ctx, c.ID(), address); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}

	h.invalidate(ctx, c.ID())
	return command.Succeeded(MessageAddress, AddressPayload{
		CustomerID: c.ID(),
		ID:         address.ID(),
		Address:    address.String(),
		Type:       string(address.Type()),
	}), nil
}

func reject[T any](m *metrics.Metrics, name string, n *notification.Notifiable) *command.Result[T] {
	m.CommandRejected(name)
	return command.Invalid[T](n)
}

// sendWelcome is best effort: the customer is already committed.
func (h *Handler) sendWelcome(ctx context.Context, c *customer.Customer) {
	if err := h.email.Send(ctx, c.Email().Address(), h.mail.From, h.mail.Subject, h.mail.Body); err != nil {
		logger.FromContext(ctx).Warn("welcome email failed",
			zap.String("customer_id", c.ID()),
			zap.Error(err))
	}
}

func (h *Handler) invalidate(ctx context.Context, customerID string) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.Invalidate(ctx, customerID); err != nil {
		logger.FromContext(ctx).Warn("read model invalidation failed",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}
}
