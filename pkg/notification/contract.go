package notification

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Contract is a fluent rule set. Each check appends a notification when the
// rule does not hold and returns the contract so checks can be chained.
type Contract struct {
	Notifiable
}

// NewContract starts an empty contract.
func NewContract() *Contract {
	return &Contract{}
}

// IsNotEmpty requires a non-empty string. Whitespace counts as content.
func (c *Contract) IsNotEmpty(value, key, message string) *Contract {
	if value == "" {
		c.AddNotification(key, message)
	}
	return c
}

// HasMinLen counts runes, not bytes.
func (c *Contract) HasMinLen(value string, min int, key, message string) *Contract {
	if utf8.RuneCountInString(value) < min {
		c.AddNotification(key, message)
	}
	return c
}

// HasMaxLen counts runes, not bytes.
func (c *Contract) HasMaxLen(value string, max int, key, message string) *Contract {
	if utf8.RuneCountInString(value) > max {
		c.AddNotification(key, message)
	}
	return c
}

// HasLen requires exactly length runes.
func (c *Contract) HasLen(value string, length int, key, message string) *Contract {
	if utf8.RuneCountInString(value) != length {
		c.AddNotification(key, message)
	}
	return c
}

// IsTrue notifies when cond is false.
func (c *Contract) IsTrue(cond bool, key, message string) *Contract {
	if !cond {
		c.AddNotification(key, message)
	}
	return c
}

// IsFalse notifies when cond is true.
func (c *Contract) IsFalse(cond bool, key, message string) *Contract {
	return c.IsTrue(!cond, key, message)
}

// IsGreaterThan requires value > than.
func (c *Contract) IsGreaterThan(value, than decimal.Decimal, key, message string) *Contract {
	if !value.GreaterThan(than) {
		c.AddNotification(key, message)
	}
	return c
}

// IsLowerOrEqualsThan requires value <= than.
func (c *Contract) IsLowerOrEqualsThan(value, than decimal.Decimal, key, message string) *Contract {
	if value.GreaterThan(than) {
		c.AddNotification(key, message)
	}
	return c
}

// IsNotNil compares against untyped nil, so a nil pointer stored in value
// passes. Callers check typed pointers with IsTrue.
func (c *Contract) IsNotNil(value any, key, message string) *Contract {
	if value == nil {
		c.AddNotification(key, message)
	}
	return c
}
