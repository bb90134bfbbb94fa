package mysql

import (
	"context"
	"errors"
	"fmt"

	"store/domain/customer"
	"store/infrastructure/persistence"
	"store/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CustomerRepository persists customers and their addresses. Addresses are
// written by hand rather than through GORM associations.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	return persistence.DB(ctx, r.db)
}

func (r *CustomerRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.CustomerPO{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) CustomerExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *CustomerRepository) DocumentInUse(ctx context.Context, document string) (bool, error) {
	return r.exists(ctx, "document = ?", document)
}

func (r *CustomerRepository) DocumentInUseByOther(ctx context.Context, id, document string) (bool, error) {
	return r.exists(ctx, "document = ? AND id <> ?", document, id)
}

// EmailInUse compares case-insensitively.
func (r *CustomerRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *CustomerRepository) EmailInUseByOther(ctx context.Context, id, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?) AND id <> ?", email, id)
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	customerPO, addressPOs := po.FromCustomerDomain(c)
	customerPO.Version = 1

	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(customerPO).Error; err != nil {
			if isDuplicateKey(err) {
				return customer.NewDuplicateCustomerError(customerPO.Document, customerPO.Email)
			}
			return err
		}
		if len(addressPOs) > 0 {
			if err := tx.Create(&addressPOs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result := r.getDB(ctx).Model(&po.CustomerPO{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"first_name": c.Name().FirstName(),
			"last_name":  c.Name().LastName(),
			"document":   c.Document().Number(),
			"email":      c.Email().Address(),
			"phone":      c.Phone().Number(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return customer.NewDuplicateCustomerError(c.Document().Number(), c.Email().Address())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return customer.NewCustomerNotFoundError(c.ID())
	}
	return nil
}

// Delete removes the customer and its addresses. Orders keep the customer id.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&po.AddressPO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&po.CustomerPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return customer.NewCustomerNotFoundError(id)
		}
		return nil
	})
}

func (r *CustomerRepository) AddAddress(ctx context.Context, customerID string, a *customer.Address) error {
	addressPO := po.FromAddressDomain(customerID, a)
	return r.getDB(ctx).Create(&addressPO).Error
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	db := r.getDB(ctx)

	var customerPO po.CustomerPO
	if err := db.First(&customerPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NewCustomerNotFoundError(id)
		}
		return nil, err
	}

	var addressPOs []po.AddressPO
	if err := db.Where("customer_id = ?", id).Order("created_at, id").Find(&addressPOs).Error; err != nil {
		return nil, fmt.Errorf("load addresses: %w", err)
	}
	return customerPO.ToDomain(addressPOs), nil
}

// inTx joins the unit of work's transaction when there is one and opens its
// own otherwise.
func (r *CustomerRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

var _ customer.Repository = (*CustomerRepository)(nil)
