package order

import (
	"time"

	"store/pkg/notification"

	"github.com/shopspring/decimal"
)

const idLength = 36

// PlaceOrderCommand asks for a new order. Quantities are decimals so fractional
// units (kilograms, metres) can be sold.
type PlaceOrderCommand struct {
	CustomerID string           `json:"customer_id"`
	Items      []PlaceOrderLine `json:"items"`
}

type PlaceOrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Validate checks the command's shape before anything is loaded.
func (c PlaceOrderCommand) Validate() *notification.Contract {
	contract := notification.NewContract().
		HasLen(c.CustomerID, idLength, "PlaceOrderCommand.Customer", "invalid customer id").
		IsTrue(len(c.Items) > 0, "PlaceOrderCommand.OrderItems", "no order items were found")
	for _, item := range c.Items {
		contract.
			IsNotEmpty(item.ProductID, "PlaceOrderCommand.OrderItems", "product id is required").
			IsGreaterThan(item.Quantity, decimal.Zero, "PlaceOrderCommand.OrderItems", "quantity must be greater than zero")
	}
	return contract
}

type OrderPayload struct {
	ID         string            `json:"id"`
	Number     string            `json:"number"`
	CustomerID string            `json:"customer_id"`
	Status     string            `json:"status"`
	CreateDate time.Time         `json:"create_date"`
	Total      decimal.Decimal   `json:"total"`
	Items      []ItemPayload     `json:"items"`
	Deliveries []DeliveryPayload `json:"deliveries"`
}

type ItemPayload struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type DeliveryPayload struct {
	ID                    string    `json:"id"`
	CreateDate            time.Time `json:"create_date"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	Status                string    `json:"status"`
}
