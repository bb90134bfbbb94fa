package customer

import (
	"fmt"
	"strings"

	"store/pkg/notification"

	"github.com/google/uuid"
)

// AddressType distinguishes where goods go from where invoices go.
type AddressType string

const (
	AddressShipping AddressType = "SHIPPING"
	AddressBilling  AddressType = "BILLING"
)

// ParseAddressType accepts the enum name in any case. Empty means shipping.
func ParseAddressType(s string) (AddressType, error) {
	switch AddressType(strings.ToUpper(strings.TrimSpace(s))) {
	case AddressShipping, "":
		return AddressShipping, nil
	case AddressBilling:
		return AddressBilling, nil
	default:
		return "", fmt.Errorf("unknown address type %q", s)
	}
}

// AddressFields is the raw input for an address.
type AddressFields struct {
	Street       string
	Number       string
	Neighborhood string
	Complement   string
	City         string
	State        string
	Country      string
	ZipCode      string
	Type         AddressType
}

// Address is owned by a Customer.
type Address struct {
	notification.Notifiable
	id     string
	fields AddressFields
}

// NewAddress gives the address a fresh id; an empty type means shipping.
// Check IsValid before attaching it.
func NewAddress(fields AddressFields) *Address {
	return newAddress(uuid.New().String(), fields)
}

// RebuildAddress restores a stored address. Repository use only.
func RebuildAddress(id string, fields AddressFields) *Address {
	return newAddress(id, fields)
}

func newAddress(id string, fields AddressFields) *Address {
	if fields.Type == "" {
		fields.Type = AddressShipping
	}
	a := &Address{id: id, fields: fields}
	a.AddNotifications(addressContract(fields))
	return a
}

func addressContract(f AddressFields) *notification.Contract {
	return notification.NewContract().
		IsNotEmpty(f.Street, "AddressContract.address.Street", "street is required").
		IsNotEmpty(f.Number, "AddressContract.address.Number", "number is required").
		IsNotEmpty(f.Neighborhood, "AddressContract.address.Neighborhood", "neighborhood is required").
		IsNotEmpty(f.City, "AddressContract.address.City", "city is required").
		IsNotEmpty(f.State, "AddressContract.address.State", "state is required").
		IsNotEmpty(f.Country, "AddressContract.address.Country", "country is required")
}

func (a *Address) ID() string           { return a.id }
func (a *Address) Street() string       { return a.fields.Street }
func (a *Address) Number() string       { return a.fields.Number }
func (a *Address) Neighborhood() string { return a.fields.Neighborhood }
func (a *Address) Complement() string   { return a.fields.Complement }
func (a *Address) City() string         { return a.fields.City }
func (a *Address) State() string        { return a.fields.State }
func (a *Address) Country() string      { return a.fields.Country }
func (a *Address) ZipCode() string      { return a.fields.ZipCode }
func (a *Address) Type() AddressType    { return a.fields.Type }
func (a *Address) Fields() AddressFields {
	return a.fields
}

func (a *Address) String() string {
	return fmt.Sprintf("%s, %s - %s, %s/%s - %s",
		a.fields.Street, a.fields.Number, a.fields.Neighborhood, a.fields.City, a.fields.State, a.fields.ZipCode)
}
