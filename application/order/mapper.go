package order

import (
	"store/domain/order"
)

func toLines(items []PlaceOrderLine) []order.Line {
	lines := make([]order.Line, len(items))
	for i, item := range items {
		lines[i] = order.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

func toOrderPayload(o *order.Order) OrderPayload {
	items := make([]ItemPayload, 0, len(o.Items()))
	for _, item := range o.Items() {
		p := ItemPayload{
			ID:       item.ID(),
			Product:  item.String(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
			Subtotal: item.Subtotal(),
		}
		if item.Product() != nil {
			p.ProductID = item.Product().ID()
		}
		items = append(items, p)
	}

	deliveries := make([]DeliveryPayload, 0, len(o.Deliveries()))
	for _, d := range o.Deliveries() {
		deliveries = append(deliveries, DeliveryPayload{
			ID:                    d.ID(),
			CreateDate:            d.CreateDate(),
			EstimatedDeliveryDate: d.EstimatedDeliveryDate(),
			Status:                string(d.Status()),
		})
	}

	return OrderPayload{
		ID:         o.ID(),
		Number:     o.Number(),
		CustomerID: o.CustomerID(),
		Status:     string(o.Status()),
		CreateDate: o.CreateDate(),
		Total:      o.Total(),
		Items:      items,
		Deliveries: deliveries,
	}
}
