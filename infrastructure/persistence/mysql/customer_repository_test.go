package mysql

import (
	"context"
	"testing"

	"store/domain/customer"
	"store/domain/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))

	c := newCustomer(t, "65589851017", "maria@store.io")
	c.AddAddress(shippingAddress(t))
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", got.Name().String())
	assert.Equal(t, "65589851017", got.Document().Number())
	assert.Equal(t, "11987654321", got.Phone().Number())
	assert.Equal(t, 1, got.Version())
	require.Len(t, got.Addresses(), 1)
	assert.Equal(t, customer.AddressShipping, got.Addresses()[0].Type())
	assert.Empty(t, got.PullEvents())

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerRepository_UniquenessChecks(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	c := newCustomer(t, "65589851017", "maria@store.io")
	require.NoError(t, repo.Save(ctx, c))

	exists, err := repo.CustomerExists(ctx, c.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	inUse, err := repo.DocumentInUse(ctx, "65589851017")
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.DocumentInUseByOther(ctx, c.ID(), "65589851017")
	require.NoError(t, err)
	assert.False(t, inUse)

	inUse, err = repo.EmailInUse(ctx, "MARIA@store.io")
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.EmailInUseByOther(ctx, uuid.NewString(), "maria@store.io")
	require.NoError(t, err)
	assert.True(t, inUse)
}

func TestCustomerRepository_DuplicateOnSave(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	require.NoError(t, repo.Save(ctx, newCustomer(t, "65589851017", "maria@store.io")))

	err := repo.Save(ctx, newCustomer(t, "65589851017", "other@store.io"))
	assert.ErrorIs(t, err, customer.ErrDuplicateCustomer)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestCustomerRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	c := newCustomer(t, "65589851017", "maria@store.io")
	require.NoError(t, repo.Save(ctx, c))
	require.NoError(t, repo.Save(ctx, newCustomer(t, "52998224725", "joao@store.io")))

	updated := customer.NewCustomerWithID(c.ID(),
		customer.NewName("Maria", "Souza"),
		customer.NewDocument("65589851017"),
		customer.NewEmail("maria.souza@store.io"),
		customer.NewPhone("11912345678"))
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", got.Name().String())
	assert.Equal(t, "maria.souza@store.io", got.Email().Address())
	assert.Equal(t, 2, got.Version())

	clash := customer.NewCustomerWithID(c.ID(),
		customer.NewName("Maria", "Souza"),
		customer.NewDocument("52998224725"),
		customer.NewEmail("maria.souza@store.io"),
		customer.NewPhone("11912345678"))
	assert.ErrorIs(t, repo.Update(ctx, clash), customer.ErrDuplicateCustomer)

	missing := customer.NewCustomerWithID(uuid.NewString(),
		customer.NewName("Ana", "Lima"),
		customer.NewDocument("25051720056"),
		customer.NewEmail("ana@store.io"),
		customer.NewPhone("11912345678"))
	assert.ErrorIs(t, repo.Update(ctx, missing), customer.ErrCustomerNotFound)
}

func TestCustomerRepository_DeleteAndAddAddress(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	c := newCustomer(t, "65589851017", "maria@store.io")
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.AddAddress(ctx, c.ID(), shippingAddress(t)))
	got, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Len(t, got.Addresses(), 1)

	require.NoError(t, repo.Delete(ctx, c.ID()))
	exists, err := repo.CustomerExists(ctx, c.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID()), customer.ErrCustomerNotFound)
}
