package po

import (
	"time"

	"store/domain/customer"
)

// CustomerPO is the customers row. Document and email carry the unique
// indexes the uniqueness checks rely on.
type CustomerPO struct {
	ID        string    `gorm:"primaryKey;size:36"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Document  string    `gorm:"size:11;uniqueIndex;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Phone     string    `gorm:"size:11;not null"`
	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CustomerPO) TableName() string {
	return "customers"
}

// AddressPO references its customer by id only.
type AddressPO struct {
	ID           string    `gorm:"primaryKey;size:36"`
	CustomerID   string    `gorm:"size:36;index;not null"`
	Street       string    `gorm:"size:200;not null"`
	Number       string    `gorm:"size:20;not null"`
	Neighborhood string    `gorm:"size:100;not null"`
	Complement   string    `gorm:"size:100"`
	City         string    `gorm:"size:100;not null"`
	State        string    `gorm:"size:50;not null"`
	Country      string    `gorm:"size:50;not null"`
	ZipCode      string    `gorm:"size:20;not null"`
	Type         string    `gorm:"size:10;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (AddressPO) TableName() string {
	return "addresses"
}

func FromCustomerDomain(c *customer.Customer) (*CustomerPO, []AddressPO) {
	customerPO := &CustomerPO{
		ID:        c.ID(),
		FirstName: c.Name().FirstName(),
		LastName:  c.Name().LastName(),
		Document:  c.Document().Number(),
		Email:     c.Email().Address(),
		Phone:     c.Phone().Number(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
	}

	addresses := c.Addresses()
	addressPOs := make([]AddressPO, len(addresses))
	for i, a := range addresses {
		addressPOs[i] = FromAddressDomain(c.ID(), a)
	}
	return customerPO, addressPOs
}

func FromAddressDomain(customerID string, a *customer.Address) AddressPO {
	return AddressPO{
		ID:           a.ID(),
		CustomerID:   customerID,
		Street:       a.Street(),
		Number:       a.Number(),
		Neighborhood: a.Neighborhood(),
		Complement:   a.Complement(),
		City:         a.City(),
		State:        a.State(),
		Country:      a.Country(),
		ZipCode:      a.ZipCode(),
		Type:         string(a.Type()),
	}
}

func (po *CustomerPO) ToDomain(addressPOs []AddressPO) *customer.Customer {
	addresses := make([]*customer.Address, len(addressPOs))
	for i := range addressPOs {
		addresses[i] = addressPOs[i].ToDomain()
	}
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:        po.ID,
		FirstName: po.FirstName,
		LastName:  po.LastName,
		Document:  po.Document,
		Email:     po.Email,
		Phone:     po.Phone,
		Addresses: addresses,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
	})
}

func (po *AddressPO) ToDomain() *customer.Address {
	return customer.RebuildAddress(po.ID, customer.AddressFields{
		Street:       po.Street,
		Number:       po.Number,
		Neighborhood: po.Neighborhood,
		Complement:   po.Complement,
		City:         po.City,
		State:        po.State,
		Country:      po.Country,
		ZipCode:      po.ZipCode,
		Type:         customer.AddressType(po.Type),
	})
}

// FullName matches customer.Name.String.
func (po *CustomerPO) FullName() string {
	return po.FirstName + " " + po.LastName
}
