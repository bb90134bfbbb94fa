package order

import (
	"store/domain/catalog"

	"github.com/shopspring/decimal"
)

// Line is one requested product and quantity.
type Line struct {
	ProductID string
	Quantity  decimal.Decimal
}

// DomainService composes orders from catalog data. It never persists.
type DomainService struct {
	opts []Option
}

func NewDomainService(opts ...Option) *DomainService {
	return &DomainService{opts: opts}
}

// Compose builds an order for the customer with one item per line, in line
// order. Lines whose product is missing from products add a notification and
// no item. The order is placed, so the order contract is evaluated too.
func (s *DomainService) Compose(customerID string, lines []Line, products map[string]*catalog.Product) *Order {
	o := New(customerID, s.opts...)
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			o.AddNotification("OrderItemContract.product", "product not found: "+line.ProductID)
			continue
		}
		o.AddItem(NewOrderItem(product, line.Quantity))
	}
	o.PlaceOrder()
	return o
}
