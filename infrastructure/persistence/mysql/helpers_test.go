package mysql

import (
	"context"
	"testing"

	"store/domain/catalog"
	"store/domain/customer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &Config{Driver: DriverSQLite, Path: MemoryPath, LogLevel: "silent"}
	db, err := cfg.Connect()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newCustomer(t *testing.T, document, email string) *customer.Customer {
	t.Helper()
	c := customer.NewCustomer(
		customer.NewName("Maria", "Silva"),
		customer.NewDocument(document),
		customer.NewEmail(email),
		customer.NewPhone("11987654321"))
	require.True(t, c.IsValid())
	return c
}

func shippingAddress(t *testing.T) *customer.Address {
	t.Helper()
	a := customer.NewAddress(customer.AddressFields{
		Street:       "Rua das Flores",
		Number:       "100",
		Neighborhood: "Centro",
		City:         "Sao Paulo",
		State:        "SP",
		Country:      "Brazil",
		ZipCode:      "01000000",
		Type:         customer.AddressShipping,
	})
	require.True(t, a.IsValid())
	return a
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string, stock int64) *catalog.Product {
	t.Helper()
	p := catalog.NewProduct(title, "", "", decimal.RequireFromString(price), decimal.NewFromInt(stock))
	require.NoError(t, NewProductRepository(db).Save(context.Background(), p))
	return p
}
