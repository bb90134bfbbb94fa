package order

import (
	"fmt"

	"store/domain/catalog"
	"store/pkg/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a product line. The price is copied from the product when the
// item is created and is not recomputed afterwards.
type OrderItem struct {
	notification.Notifiable

	id       string
	product  *catalog.Product
	quantity decimal.Decimal
	price    decimal.Decimal
}

func NewOrderItem(product *catalog.Product, quantity decimal.Decimal) *OrderItem {
	item := &OrderItem{
		id:       uuid.New().String(),
		product:  product,
		quantity: quantity,
	}
	if product == nil {
		item.AddNotification("OrderItemContract.product", "product is required")
		return item
	}
	item.price = product.Price()
	item.AddNotifications(notification.NewContract().
		IsLowerOrEqualsThan(quantity, product.QuantityOnHand(), "OrderItemContract.orderItem",
			fmt.Sprintf("requested quantity of %s is greater than the quantity on hand", product)))
	return item
}

// RebuildOrderItem restores a stored item with its snapshotted price.
func RebuildOrderItem(id string, product *catalog.Product, quantity, price decimal.Decimal) *OrderItem {
	return &OrderItem{id: id, product: product, quantity: quantity, price: price}
}

func (i *OrderItem) ID() string                { return i.id }
func (i *OrderItem) Product() *catalog.Product { return i.product }
func (i *OrderItem) Quantity() decimal.Decimal { return i.quantity }
func (i *OrderItem) Price() decimal.Decimal    { return i.price }

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.price.Mul(i.quantity)
}

func (i *OrderItem) String() string {
	if i.product == nil {
		return ""
	}
	return i.product.Title()
}
