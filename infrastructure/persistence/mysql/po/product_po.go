package po

import (
	"store/domain/catalog"

	"github.com/shopspring/decimal"
)

type ProductPO struct {
	ID             string          `gorm:"primaryKey;size:36"`
	Title          string          `gorm:"size:100;index;not null"`
	Description    string          `gorm:"size:1024"`
	ImageURL       string          `gorm:"size:512"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(18,3);not null"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:             p.ID(),
		Title:          p.Title(),
		Description:    p.Description(),
		ImageURL:       p.ImageURL(),
		Price:          p.Price(),
		QuantityOnHand: p.QuantityOnHand(),
	}
}

func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildProduct(po.ID, po.Title, po.Description, po.ImageURL, po.Price, po.QuantityOnHand)
}
