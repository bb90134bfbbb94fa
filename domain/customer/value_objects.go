package customer

import (
	"store/pkg/document"
	"store/pkg/notification"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength = 2
	NameMaxLength = 100
	PhoneLength   = 11
)

var emailValidator = validator.New()

// ============================================================================
// Name
// ============================================================================

type Name struct {
	notification.Notifiable
	firstName string
	lastName  string
}

// NewName requires both parts between NameMinLength and NameMaxLength runes.
func NewName(firstName, lastName string) *Name {
	n := &Name{firstName: firstName, lastName: lastName}
	n.AddNotifications(notification.NewContract().
		IsNotEmpty(firstName, "Name.firstName", "first name is required").
		HasMinLen(firstName, NameMinLength, "Name.firstName", "first name must be between 2 and 100 characters").
		HasMaxLen(firstName, NameMaxLength, "Name.firstName", "first name must be between 2 and 100 characters").
		IsNotEmpty(lastName, "Name.lastName", "last name is required").
		HasMinLen(lastName, NameMinLength, "Name.lastName", "last name must be between 2 and 100 characters").
		HasMaxLen(lastName, NameMaxLength, "Name.lastName", "last name must be between 2 and 100 characters"))
	return n
}

func (n *Name) FirstName() string { return n.firstName }
func (n *Name) LastName() string  { return n.lastName }

func (n *Name) String() string {
	return n.firstName + " " + n.lastName
}

func (n *Name) Equals(other *Name) bool {
	return other != nil && n.firstName == other.firstName && n.lastName == other.lastName
}

// ============================================================================
// Document
// ============================================================================

// Document is a CPF. The number is kept exactly as given; callers normalise it first.
type Document struct {
	notification.Notifiable
	number string
}

// NewDocument keeps the number as typed; punctuation is ignored by the CPF check and by Equals.
func NewDocument(number string) *Document {
	d := &Document{number: number}
	d.AddNotifications(notification.NewContract().
		IsTrue(document.IsValidCPF(number), "Document.Number", "invalid CPF"))
	return d
}

func (d *Document) Number() string { return d.number }
func (d *Document) String() string { return d.number }

func (d *Document) Equals(other *Document) bool {
	return other != nil && document.OnlyDigits(d.number) == document.OnlyDigits(other.number)
}

// ============================================================================
// Email
// ============================================================================

type Email struct {
	notification.Notifiable
	address string
}

func NewEmail(address string) *Email {
	e := &Email{address: address}
	e.AddNotifications(notification.NewContract().
		IsTrue(isEmail(address), "Email.address", "invalid e-mail"))
	return e
}

func isEmail(address string) bool {
	return emailValidator.Var(address, "required,email") == nil
}

func (e *Email) Address() string { return e.address }
func (e *Email) String() string  { return e.address }

func (e *Email) Equals(other *Email) bool {
	return other != nil && e.address == other.address
}

// ============================================================================
// Phone
// ============================================================================

// Phone stores digits only.
type Phone struct {
	notification.Notifiable
	number string
}

// NewPhone stores digits only.
func NewPhone(number string) *Phone {
	digits := document.OnlyDigits(number)
	p := &Phone{number: digits}
	p.AddNotifications(notification.NewContract().
		HasLen(digits, PhoneLength, "Phone.number", "phone number must have 11 digits"))
	return p
}

func (p *Phone) Number() string { return p.number }
func (p *Phone) String() string { return p.number }

func (p *Phone) Equals(other *Phone) bool {
	return other != nil && p.number == other.number
}
