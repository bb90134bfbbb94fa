// Package catalog holds the products orders are composed of. Products are read-only to orders.
package catalog

import (
	"context"
	"strings"

	"store/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	id             string
	title          string
	description    string
	imageURL       string
	price          decimal.Decimal
	quantityOnHand decimal.Decimal
}

func NewProduct(title, description, imageURL string, price, quantityOnHand decimal.Decimal) *Product {
	return RebuildProduct(uuid.New().String(), title, description, imageURL, price, quantityOnHand)
}

// RebuildProduct restores a stored product.
func RebuildProduct(id, title, description, imageURL string, price, quantityOnHand decimal.Decimal) *Product {
	return &Product{
		id:             id,
		title:          title,
		description:    description,
		imageURL:       imageURL,
		price:          price,
		quantityOnHand: quantityOnHand,
	}
}

func (p *Product) ID() string                      { return p.id }
func (p *Product) Title() string                   { return p.title }
func (p *Product) Description() string             { return p.description }
func (p *Product) ImageURL() string                { return p.imageURL }
func (p *Product) Price() decimal.Decimal          { return p.price }
func (p *Product) QuantityOnHand() decimal.Decimal { return p.quantityOnHand }

// String is the product title in upper case, as it appears in stock messages.
func (p *Product) String() string {
	return strings.ToUpper(p.title)
}

// Repository is the catalog collaborator. FindByID reports a missing product
// with shared.ErrNotFound; FindByIDs omits missing ids from the map.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, p *Product) error
}

var _ shared.Entity = (*Product)(nil)
