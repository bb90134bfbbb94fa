package customer

import (
	"store/pkg/notification"
)

// idLength is the length of a UUID in its canonical textual form.
const idLength = 36

type CreateCustomerCommand struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Document  string `json:"document"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdateCustomerCommand replaces every attribute of the customer with ID.
// ID comes from the route, not the body.
type UpdateCustomerCommand struct {
	ID        string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Document  string `json:"document"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DeleteCommand validates itself on construction.
type DeleteCommand struct {
	notification.Notifiable
	ID string
}

func NewDeleteCommand(id string) *DeleteCommand {
	cmd := &DeleteCommand{ID: id}
	cmd.AddNotifications(notification.NewContract().
		IsNotEmpty(id, "DeleteCommand.Id", "id is required").
		HasLen(id, idLength, "DeleteCommand.Id", "invalid id"))
	return cmd
}

type AddAddressCommand struct {
	CustomerID   string `json:"-"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zip_code"`
	Type         string `json:"type"`
}
