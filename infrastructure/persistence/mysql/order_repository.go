package mysql

import (
	"context"
	"errors"
	"time"

	"store/domain/order"
	"store/infrastructure/persistence"
	"store/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository persists the order aggregate: the order row, its items and
// its deliveries. Items are immutable once placed; deliveries are upserted.
// Updates are guarded by the version column.
type OrderRepository struct {
	db       *gorm.DB
	products *ProductRepository
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, products: NewProductRepository(db)}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	return persistence.DB(ctx, r.db)
}

// Save inserts a new order or updates a stored one. Within UoW.Execute it
// uses the transaction from context; standalone it opens its own.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	save := func(tx *gorm.DB) error {
		if o.Version() == 0 {
			return r.insertWithTx(tx, o)
		}
		return r.updateWithTx(tx, o)
	}

	var err error
	if tx := persistence.TxFromContext(ctx); tx != nil {
		err = save(tx)
	} else {
		err = r.db.WithContext(ctx).Transaction(save)
	}
	if err != nil {
		return err
	}

	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) insertWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs, deliveryPOs := po.FromOrderDomain(o)
	orderPO.Version = 1

	if err := tx.Create(orderPO).Error; err != nil {
		if isDuplicateKey(err) {
			return order.NewConcurrentModificationError(o.ID())
		}
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
	if len(deliveryPOs) > 0 {
		if err := tx.Create(&deliveryPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) updateWithTx(tx *gorm.DB, o *order.Order) error {
	result := tx.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), o.Version()).
		Updates(map[string]any{
			"status":     string(o.Status()),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewConcurrentModificationError(o.ID())
	}

	deliveryPOs := po.FromDeliveries(o)
	if len(deliveryPOs) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "estimated_delivery_date"}),
	}).Create(&deliveryPOs).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var orderPO po.OrderPO
	if err := r.getDB(ctx).First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	orders, err := r.hydrate(ctx, []po.OrderPO{orderPO})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// FindByCustomerID returns the customer's orders, oldest first.
func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	if err := r.getDB(ctx).
		Where("customer_id = ?", customerID).
		Order("create_date ASC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, orderPOs)
}

// hydrate loads items, deliveries and products for the orders in three
// queries, without GORM's Preload.
func (r *OrderRepository) hydrate(ctx context.Context, orderPOs []po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}
	db := r.getDB(ctx)

	ids := make([]string, len(orderPOs))
	for i := range orderPOs {
		ids[i] = orderPOs[i].ID
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	var deliveryPOs []po.DeliveryPO
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&deliveryPOs).Error; err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(itemPOs))
	seen := make(map[string]bool, len(itemPOs))
	for _, item := range itemPOs {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := r.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]po.OrderItemPO, len(orderPOs))
	for _, item := range itemPOs {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	deliveriesByOrder := make(map[string][]po.DeliveryPO, len(orderPOs))
	for _, d := range deliveryPOs {
		deliveriesByOrder[d.OrderID] = append(deliveriesByOrder[d.OrderID], d)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(itemsByOrder[orderPOs[i].ID], deliveriesByOrder[orderPOs[i].ID], products)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
