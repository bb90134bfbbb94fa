package customer

import (
	"strings"
	"testing"

	"store/pkg/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParts() (*Name, *Document, *Email, *Phone) {
	return NewName("John", "Doe"),
		NewDocument("65589851017"),
		NewEmail("john@doe.com"),
		NewPhone("(11) 98765-4321")
}

func TestName(t *testing.T) {
	assert.True(t, NewName("John", "Doe").IsValid())

	invalid := NewName("A", "Norianz")
	require.False(t, invalid.IsValid())
	assert.Equal(t, []string{"Name.firstName"}, notification.Keys(invalid.Notifications()))

	assert.False(t, NewName("John", strings.Repeat("x", 101)).IsValid())
	assert.True(t, NewName("Jo", strings.Repeat("x", 100)).IsValid())
	assert.Equal(t, "John Doe", NewName("John", "Doe").String())
	assert.True(t, NewName("John", "Doe").Equals(NewName("John", "Doe")))
}

func TestDocument(t *testing.T) {
	assert.True(t, NewDocument("655.898.510-17").IsValid())

	invalid := NewDocument("1234")
	require.False(t, invalid.IsValid())
	assert.Equal(t, "Document.Number", invalid.Notifications()[0].Key)
	assert.True(t, NewDocument("655.898.510-17").Equals(NewDocument("65589851017")))
}

func TestEmail(t *testing.T) {
	assert.True(t, NewEmail("hello@store.com").IsValid())
	assert.False(t, NewEmail("not-an-email").IsValid())
	assert.False(t, NewEmail("").IsValid())
	assert.Equal(t, "Email.address", NewEmail("x").Notifications()[0].Key)
}

func TestPhone(t *testing.T) {
	p := NewPhone("(11) 98765-4321")
	assert.True(t, p.IsValid())
	assert.Equal(t, "11987654321", p.Number())

	assert.False(t, NewPhone("98765-4321").IsValid())
	assert.False(t, NewPhone("119876543210").IsValid())
}

func TestNewCustomer_ValidParts(t *testing.T) {
	c := NewCustomer(validParts())

	assert.True(t, c.IsValid())
	assert.Len(t, c.ID(), 36)
	assert.Equal(t, "John Doe", c.String())

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCustomerRegistered, events[0].EventName())
}

func TestNewCustomer_AnyInvalidPartInvalidatesCustomer(t *testing.T) {
	name, doc, email, phone := validParts()

	cases := map[string]*Customer{
		"name":     NewCustomer(NewName("A", "Doe"), doc, email, phone),
		"document": NewCustomer(name, NewDocument("1234"), email, phone),
		"email":    NewCustomer(name, doc, NewEmail("nope"), phone),
		"phone":    NewCustomer(name, doc, email, NewPhone("123")),
	}

	for part, c := range cases {
		t.Run(part, func(t *testing.T) {
			assert.False(t, c.IsValid())
			assert.Empty(t, c.PullEvents())
		})
	}
}

func TestNewCustomer_MissingPartsBreakContract(t *testing.T) {
	c := NewCustomer(nil, nil, nil, nil)

	assert.Equal(t, []string{
		"CustomerContract.customer.Name",
		"CustomerContract.customer.Document",
		"CustomerContract.customer.Email",
		"CustomerContract.customer.Phone",
	}, notification.Keys(c.Notifications()))
}

func TestNewCustomerWithID_KeepsID(t *testing.T) {
	name, doc, email, phone := validParts()
	id := "0f8fad5b-d9cb-469f-a165-70867728950e"

	c := NewCustomerWithID(id, name, doc, email, phone)
	assert.Equal(t, id, c.ID())
	assert.True(t, c.IsValid())
}

func TestAddress(t *testing.T) {
	a := NewAddress(AddressFields{
		Street: "Rua A", Number: "10", Neighborhood: "Centro",
		City: "São Paulo", State: "SP", Country: "BR", ZipCode: "01000-000",
	})
	assert.True(t, a.IsValid())
	assert.Equal(t, AddressShipping, a.Type())

	empty := NewAddress(AddressFields{Type: AddressBilling})
	assert.Equal(t, []string{
		"AddressContract.address.Street",
		"AddressContract.address.Number",
		"AddressContract.address.Neighborhood",
		"AddressContract.address.City",
		"AddressContract.address.State",
		"AddressContract.address.Country",
	}, notification.Keys(empty.Notifications()))
}

func TestCustomerAddAddress_MergesAddressContract(t *testing.T) {
	c := NewCustomer(validParts())
	c.PullEvents()

	c.AddAddress(NewAddress(AddressFields{Street: "Rua A"}))

	assert.False(t, c.IsValid())
	assert.Len(t, c.Addresses(), 1)
	assert.Empty(t, c.PullEvents())
}

func TestParseAddressType(t *testing.T) {
	typ, err := ParseAddressType("billing")
	require.NoError(t, err)
	assert.Equal(t, AddressBilling, typ)

	typ, err = ParseAddressType("")
	require.NoError(t, err)
	assert.Equal(t, AddressShipping, typ)

	_, err = ParseAddressType("home")
	assert.Error(t, err)
}

func TestCustomerErrors(t *testing.T) {
	err := NewCustomerNotFoundError("x")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	dup := NewDuplicateCustomerError("1", "a@b.c")
	assert.ErrorIs(t, dup, ErrDuplicateCustomer)
}
