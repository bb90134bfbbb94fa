package mysql

import (
	"context"
	"errors"

	"store/domain/catalog"
	"store/domain/shared"
	"store/infrastructure/persistence"
	"store/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO
	if err := persistence.DB(ctx, r.db).First(&productPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product", id)
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

// FindByIDs loads the products in one query. Unknown ids are left out.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var productPOs []po.ProductPO
	if err := persistence.DB(ctx, r.db).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}
	for i := range productPOs {
		products[productPOs[i].ID] = productPOs[i].ToDomain()
	}
	return products, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	var productPOs []po.ProductPO
	if err := persistence.DB(ctx, r.db).Order("title").Find(&productPOs).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, nil
}

// Save inserts the product or overwrites the stored one.
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return persistence.DB(ctx, r.db).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(po.FromProductDomain(p)).Error
}

var _ catalog.Repository = (*ProductRepository)(nil)
