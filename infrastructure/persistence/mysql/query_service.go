package mysql

import (
	"context"
	"errors"

	"store/domain/customer"
	"store/infrastructure/persistence"
	"store/infrastructure/persistence/mysql/po"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QueryService answers the customer read side straight from the tables,
// without rebuilding aggregates.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

func (q *QueryService) ListCustomers(ctx context.Context) ([]customer.ListItem, error) {
	var rows []po.CustomerPO
	if err := persistence.DB(ctx, q.db).
		Select("id", "first_name", "last_name", "email", "document").
		Order("first_name, last_name").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]customer.ListItem, len(rows))
	for i := range rows {
		items[i] = customer.ListItem{
			ID:       rows[i].ID,
			Name:     rows[i].FullName(),
			Email:    rows[i].Email,
			Document: rows[i].Document,
		}
	}
	return items, nil
}

func (q *QueryService) GetCustomer(ctx context.Context, id string) (*customer.Detail, error) {
	db := persistence.DB(ctx, q.db)

	var row po.CustomerPO
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var addressPOs []po.AddressPO
	if err := db.Where("customer_id = ?", id).Order("created_at, id").Find(&addressPOs).Error; err != nil {
		return nil, err
	}

	detail := &customer.Detail{
		ID:        row.ID,
		Name:      row.FullName(),
		Email:     row.Email,
		Document:  row.Document,
		Phone:     row.Phone,
		Addresses: make([]customer.AddressDetail, len(addressPOs)),
	}
	for i, a := range addressPOs {
		detail.Addresses[i] = customer.AddressDetail{
			ID:           a.ID,
			Street:       a.Street,
			Number:       a.Number,
			Neighborhood: a.Neighborhood,
			Complement:   a.Complement,
			City:         a.City,
			State:        a.State,
			Country:      a.Country,
			ZipCode:      a.ZipCode,
			Type:         a.Type,
		}
	}
	return detail, nil
}

type orderTotalRow struct {
	ID        string
	FirstName string
	LastName  string
	Document  string
	Email     string
	OrderID   string
	Total     decimal.Decimal
}

// ListOrders sums price times quantity per order.
func (q *QueryService) ListOrders(ctx context.Context, customerID string) ([]customer.OrderSummary, error) {
	var rows []orderTotalRow
	err := persistence.DB(ctx, q.db).
		Table("customers AS c").
		Select("c.id, c.first_name, c.last_name, c.document, c.email, o.id AS order_id, SUM(i.price * i.quantity) AS total").
		Joins("JOIN orders AS o ON o.customer_id = c.id").
		Joins("JOIN order_items AS i ON i.order_id = o.id").
		Where("c.id = ?", customerID).
		Group("c.id, c.first_name, c.last_name, c.document, c.email, o.id, o.create_date").
		Order("o.create_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]customer.OrderSummary, len(rows))
	for i, r := range rows {
		summaries[i] = customer.OrderSummary{
			ID:       r.ID,
			Name:     r.FirstName + " " + r.LastName,
			Document: r.Document,
			Email:    r.Email,
			OrderID:  r.OrderID,
			Total:    r.Total,
		}
	}
	return summaries, nil
}

type ordersCountRow struct {
	ID        string
	FirstName string
	LastName  string
	Document  string
	Orders    int64
}

func (q *QueryService) CountOrders(ctx context.Context, document string) (*customer.OrdersCount, error) {
	var rows []ordersCountRow
	err := persistence.DB(ctx, q.db).
		Table("customers AS c").
		Select("c.id, c.first_name, c.last_name, c.document, COUNT(o.id) AS orders").
		Joins("JOIN orders AS o ON o.customer_id = c.id").
		Where("c.document = ?", document).
		Group("c.id, c.first_name, c.last_name, c.document").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	r := rows[0]
	return &customer.OrdersCount{
		ID:       r.ID,
		Name:     r.FirstName + " " + r.LastName,
		Document: r.Document,
		Orders:   r.Orders,
	}, nil
}

var _ customer.QueryService = (*QueryService)(nil)
