package po

import (
	"time"

	"store/domain/catalog"
	"store/domain/order"

	"github.com/shopspring/decimal"
)

// OrderPO is the orders row. Customer and products are referenced by id;
// no GORM associations are declared so the aggregate boundary stays explicit.
type OrderPO struct {
	ID         string    `gorm:"primaryKey;size:36"`
	CustomerID string    `gorm:"size:36;index;not null"`
	Number     string    `gorm:"size:8;index;not null"`
	CreateDate time.Time `gorm:"not null"`
	Status     string    `gorm:"size:20;not null"`
	Version    int       `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO keeps the unit price captured when the order was placed.
type OrderItemPO struct {
	ID        string          `gorm:"primaryKey;size:36"`
	OrderID   string          `gorm:"size:36;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"size:36;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

type DeliveryPO struct {
	ID                    string    `gorm:"primaryKey;size:36"`
	OrderID               string    `gorm:"size:36;index;not null"`
	Position              int       `gorm:"not null"`
	CreateDate            time.Time `gorm:"not null"`
	EstimatedDeliveryDate time.Time `gorm:"not null"`
	Status                string    `gorm:"size:20;not null"`
}

func (DeliveryPO) TableName() string {
	return "deliveries"
}

func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO, []DeliveryPO) {
	orderPO := &OrderPO{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Number:     o.Number(),
		CreateDate: o.CreateDate(),
		Status:     string(o.Status()),
		Version:    o.Version(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		productID := ""
		if item.Product() != nil {
			productID = item.Product().ID()
		}
		itemPOs[i] = OrderItemPO{
			ID:        item.ID(),
			OrderID:   o.ID(),
			Position:  i,
			ProductID: productID,
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		}
	}

	return orderPO, itemPOs, FromDeliveries(o)
}

// FromDeliveries keeps the order's delivery sequence in Position; deliveries
// created by one Ship share their create date.
func FromDeliveries(o *order.Order) []DeliveryPO {
	deliveries := o.Deliveries()
	deliveryPOs := make([]DeliveryPO, len(deliveries))
	for i, d := range deliveries {
		deliveryPOs[i] = DeliveryPO{
			ID:                    d.ID(),
			OrderID:               o.ID(),
			Position:              i,
			CreateDate:            d.CreateDate(),
			EstimatedDeliveryDate: d.EstimatedDeliveryDate(),
			Status:                string(d.Status()),
		}
	}
	return deliveryPOs
}

// ToDomain rebuilds the order. An item whose product left the catalog keeps
// a nil product.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO, deliveryPOs []DeliveryPO, products map[string]*catalog.Product) *order.Order {
	items := make([]*order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildOrderItem(itemPO.ID, products[itemPO.ProductID], itemPO.Quantity, itemPO.Price)
	}

	deliveries := make([]*order.Delivery, len(deliveryPOs))
	for i, d := range deliveryPOs {
		deliveries[i] = order.RebuildDelivery(d.ID, d.CreateDate, d.EstimatedDeliveryDate, order.DeliveryStatus(d.Status))
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         po.ID,
		CustomerID: po.CustomerID,
		Number:     po.Number,
		CreateDate: po.CreateDate,
		Status:     order.Status(po.Status),
		Items:      items,
		Deliveries: deliveries,
		Version:    po.Version,
	})
}
