package mysql

import (
	"context"
	"testing"
	"time"

	"store/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	mouse := seedProduct(t, db, "Mouse", "129.90", 50)
	chair := seedProduct(t, db, "Chair", "1299.00", 3)

	o := order.New(uuid.NewString())
	o.AddItem(order.NewOrderItem(mouse, decimal.NewFromInt(2)))
	o.AddItem(order.NewOrderItem(chair, decimal.NewFromInt(1)))
	o.PlaceOrder()
	require.True(t, o.IsValid())

	require.NoError(t, repo.Save(ctx, o))
	assert.Equal(t, 1, o.Version())

	got, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.Number(), got.Number())
	assert.Equal(t, order.StatusCreated, got.Status())
	assert.WithinDuration(t, o.CreateDate(), got.CreateDate(), time.Millisecond)
	require.Len(t, got.Items(), 2)
	assert.Equal(t, "Mouse", got.Items()[0].Product().Title())
	assert.True(t, got.Total().Equal(decimal.RequireFromString("1558.80")), got.Total().String())

	got.Pay()
	got.Ship()
	require.NoError(t, repo.Save(ctx, got))
	assert.Equal(t, 2, got.Version())

	shipped, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, shipped.Status())
	require.Len(t, shipped.Deliveries(), 1)
	assert.Equal(t, order.DeliveryShipped, shipped.Deliveries()[0].Status())

	shipped.Cancel()
	require.NoError(t, repo.Save(ctx, shipped))

	canceled, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusCanceled, canceled.Status())
	assert.Equal(t, order.DeliveryCanceled, canceled.Deliveries()[0].Status())
}

func TestOrderRepository_StaleVersion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	mouse := seedProduct(t, db, "Mouse", "129.90", 50)

	o := order.New(uuid.NewString())
	o.AddItem(order.NewOrderItem(mouse, decimal.NewFromInt(1)))
	o.PlaceOrder()
	require.NoError(t, repo.Save(ctx, o))

	first, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)

	first.Pay()
	require.NoError(t, repo.Save(ctx, first))

	second.Cancel()
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
	assert.Equal(t, 1, second.Version())
}

func TestOrderRepository_DeliveriesKeepShipOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	mouse := seedProduct(t, db, "Mouse", "129.90", 50)

	// Deliveries of one Ship share a create date and have random ids, so a
	// single reload could pass by chance.
	for run := 0; run < 10; run++ {
		o := order.New(uuid.NewString())
		for i := 0; i < 11; i++ {
			o.AddItem(order.NewOrderItem(mouse, decimal.NewFromInt(1)))
		}
		o.PlaceOrder()
		require.NoError(t, repo.Save(ctx, o))

		o.Ship()
		require.NoError(t, repo.Save(ctx, o))
		want := make([]string, 0, 3)
		for _, d := range o.Deliveries() {
			want = append(want, d.ID())
		}
		require.Len(t, want, 3)

		got, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		ids := make([]string, 0, len(got.Deliveries()))
		for _, d := range got.Deliveries() {
			ids = append(ids, d.ID())
		}
		require.Equal(t, want, ids)

		last := got.Deliveries()[2]
		assert.Equal(t, order.PartialBatchLeadTime, last.EstimatedDeliveryDate().Sub(last.CreateDate()))
	}
}

func TestOrderRepository_FindByCustomerID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	mouse := seedProduct(t, db, "Mouse", "129.90", 50)
	customerID := uuid.NewString()

	for i := 0; i < 2; i++ {
		o := order.New(customerID)
		o.AddItem(order.NewOrderItem(mouse, decimal.NewFromInt(1)))
		o.PlaceOrder()
		require.NoError(t, repo.Save(ctx, o))
	}

	orders, err := repo.FindByCustomerID(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	none, err := repo.FindByCustomerID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	mouse := seedProduct(t, db, "Mouse", "129.90", 50)
	seedProduct(t, db, "Chair", "1299.00", 3)

	got, err := repo.FindByID(ctx, mouse.ID())
	require.NoError(t, err)
	assert.True(t, got.Price().Equal(decimal.RequireFromString("129.90")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Chair", list[0].Title())

	missing := uuid.NewString()
	found, err := repo.FindByIDs(ctx, []string{mouse.ID(), missing})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, mouse.ID())
}
