package order

import (
	"regexp"
	"testing"
	"time"

	"store/domain/catalog"
	"store/pkg/notification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customerID = "0f8fad5b-d9cb-469f-a165-70867728950e"

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func product(onHand int64) *catalog.Product {
	return catalog.NewProduct("Mouse", "Wireless mouse", "https://img/mouse.png",
		decimal.RequireFromString("59.90"), decimal.NewFromInt(onHand))
}

func orderWithItems(n int) *Order {
	o := New(customerID, WithClock(fixedClock))
	p := product(100)
	for i := 0; i < n; i++ {
		o.AddItem(NewOrderItem(p, decimal.NewFromInt(1)))
	}
	return o
}

func TestNew(t *testing.T) {
	o := New(customerID, WithClock(fixedClock))

	assert.Equal(t, StatusCreated, o.Status())
	assert.Equal(t, fixedNow, o.CreateDate())
	assert.Empty(t, o.Number())
	assert.Empty(t, o.Items())
	assert.Empty(t, o.Deliveries())
	assert.True(t, o.IsValid())
}

func TestNew_RequiresCustomer(t *testing.T) {
	o := New("")
	assert.Equal(t, []string{"OrderContract.customer"}, notification.Keys(o.Notifications()))
}

func TestOrderItem_StockContract(t *testing.T) {
	p := product(1)

	over := NewOrderItem(p, decimal.NewFromInt(5))
	require.False(t, over.IsValid())
	assert.Equal(t, "OrderItemContract.orderItem", over.Notifications()[0].Key)
	assert.Contains(t, over.Notifications()[0].Message, "MOUSE")

	assert.True(t, NewOrderItem(p, decimal.NewFromInt(1)).IsValid())
}

func TestOrderItem_SnapshotsPrice(t *testing.T) {
	item := NewOrderItem(product(10), decimal.NewFromInt(3))

	assert.True(t, item.Price().Equal(decimal.RequireFromString("59.90")))
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("179.70")))
}

func TestOrderItem_NilProduct(t *testing.T) {
	item := NewOrderItem(nil, decimal.NewFromInt(1))
	assert.Equal(t, []string{"OrderItemContract.product"}, notification.Keys(item.Notifications()))
}

func TestAddItem_MergesItemNotifications(t *testing.T) {
	o := New(customerID)
	o.AddItem(NewOrderItem(product(1), decimal.NewFromInt(2)))

	assert.False(t, o.IsValid())
	assert.Len(t, o.Items(), 1)
}

func TestPlaceOrder_AssignsNumber(t *testing.T) {
	o := orderWithItems(1)
	o.PlaceOrder()

	assert.True(t, o.IsValid())
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), o.Number())
	assert.True(t, o.IsPlaced())

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderPlaced, events[0].EventName())
}

func TestPlaceOrder_WithoutItems(t *testing.T) {
	o := New(customerID)
	o.PlaceOrder()

	assert.False(t, o.IsValid())
	assert.Equal(t, []string{"OrderContract.order"}, notification.Keys(o.Notifications()))
	assert.Empty(t, o.Number())
	assert.Empty(t, o.PullEvents())
}

func TestPay(t *testing.T) {
	o := New(customerID)
	o.Pay()
	assert.Equal(t, StatusPaid, o.Status())
}

func TestShip_Batching(t *testing.T) {
	cases := []struct {
		items      int
		deliveries int
	}{
		{0, 0}, {1, 1}, {4, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3},
	}

	for _, tc := range cases {
		o := orderWithItems(tc.items)
		o.Ship()

		require.Len(t, o.Deliveries(), tc.deliveries, "items=%d", tc.items)
		for _, d := range o.Deliveries() {
			assert.Equal(t, DeliveryShipped, d.Status())
			assert.Equal(t, fixedNow, d.CreateDate())
		}
	}
}

func TestShip_SixItemsDueDates(t *testing.T) {
	o := orderWithItems(6)
	o.Ship()

	deliveries := o.Deliveries()
	require.Len(t, deliveries, 2)
	assert.Equal(t, fixedNow.AddDate(0, 0, 5), deliveries[0].EstimatedDeliveryDate())
	assert.Equal(t, fixedNow.AddDate(0, 0, 6), deliveries[1].EstimatedDeliveryDate())
}

func TestShip_FullBatchesOnly(t *testing.T) {
	o := orderWithItems(10)
	o.Ship()

	for _, d := range o.Deliveries() {
		assert.Equal(t, fixedNow.AddDate(0, 0, 5), d.EstimatedDeliveryDate())
	}
}

func TestShip_TwiceDuplicatesDeliveries(t *testing.T) {
	o := orderWithItems(3)
	o.Ship()
	o.Ship()
	assert.Len(t, o.Deliveries(), 2)
}

func TestCancel_LeavesDeliveredUntouched(t *testing.T) {
	o := orderWithItems(11)
	o.Ship()
	o.Deliveries()[1].Deliver()

	o.Cancel()

	assert.Equal(t, StatusCanceled, o.Status())
	d := o.Deliveries()
	assert.Equal(t, DeliveryCanceled, d[0].Status())
	assert.Equal(t, DeliveryDelivered, d[1].Status())
	assert.Equal(t, DeliveryCanceled, d[2].Status())
}

func TestDeliver(t *testing.T) {
	o := orderWithItems(6)
	o.Ship()
	o.PullEvents()
	second := o.Deliveries()[1]

	assert.True(t, o.Deliver(second.ID()))
	assert.Equal(t, DeliveryDelivered, second.Status())
	assert.Equal(t, DeliveryShipped, o.Deliveries()[0].Status())
	assert.False(t, o.Deliver("missing"))

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventDeliveryDelivered, events[0].EventName())
	assert.Nil(t, o.Delivery("missing"))
}

func TestCancel_WaitingDelivery(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{
		ID:         "order-1",
		CustomerID: customerID,
		Status:     StatusPaid,
		Deliveries: []*Delivery{NewDelivery(fixedNow, fixedNow.Add(FullBatchLeadTime))},
		Version:    1,
	})
	o.Cancel()
	assert.Equal(t, DeliveryCanceled, o.Deliveries()[0].Status())
}

func TestTotal(t *testing.T) {
	o := orderWithItems(2)
	assert.True(t, o.Total().Equal(decimal.RequireFromString("119.80")))
}

func TestDomainService_Compose(t *testing.T) {
	p := product(2)
	svc := NewDomainService(WithClock(fixedClock))

	o := svc.Compose(customerID, []Line{
		{ProductID: p.ID(), Quantity: decimal.NewFromInt(1)},
		{ProductID: "missing", Quantity: decimal.NewFromInt(1)},
	}, map[string]*catalog.Product{p.ID(): p})

	assert.Len(t, o.Items(), 1)
	assert.Equal(t, []string{"OrderItemContract.product"}, notification.Keys(o.Notifications()))
	assert.NotEmpty(t, o.Number())
}

func TestDomainService_ComposeEmpty(t *testing.T) {
	o := NewDomainService().Compose(customerID, nil, nil)
	assert.Equal(t, []string{"OrderContract.order"}, notification.Keys(o.Notifications()))
}

func TestOrderErrors(t *testing.T) {
	assert.ErrorIs(t, NewOrderNotFoundError("x"), ErrOrderNotFound)
	assert.ErrorIs(t, NewConcurrentModificationError("x"), ErrConcurrentModification)
	assert.ErrorIs(t, NewAlreadyShippedError("x"), ErrAlreadyShipped)
}
