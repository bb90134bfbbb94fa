package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"store/domain/customer"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBackend struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failing bool
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

var errBackendDown = errors.New("backend down")

func (b *memoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return "", false, errBackendDown
	}
	v, ok := b.values[key]
	return v, ok, nil
}

func (b *memoryBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return errBackendDown
	}
	b.values[key] = value
	b.ttls[key] = ttl
	return nil
}

func (b *memoryBackend) Del(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.values, k)
	}
	return nil
}

type countingQueries struct {
	details map[string]*customer.Detail
	gets    int
}

func (q *countingQueries) ListCustomers(context.Context) ([]customer.ListItem, error) {
	return nil, nil
}

func (q *countingQueries) GetCustomer(_ context.Context, id string) (*customer.Detail, error) {
	q.gets++
	return q.details[id], nil
}

func (q *countingQueries) ListOrders(context.Context, string) ([]customer.OrderSummary, error) {
	return nil, nil
}

func (q *countingQueries) CountOrders(context.Context, string) (*customer.OrdersCount, error) {
	return nil, nil
}

func newQueries() *countingQueries {
	return &countingQueries{details: map[string]*customer.Detail{
		"c1": {ID: "c1", Name: "Maria Silva", Addresses: []customer.AddressDetail{{ID: "a1", Type: "SHIPPING"}}},
	}}
}

func TestCustomerQueryCache_CachesDetails(t *testing.T) {
	ctx := context.Background()
	next := newQueries()
	backend := newMemoryBackend()
	c := NewCustomerQueryCache(next, backend, time.Minute)

	first, err := c.GetCustomer(ctx, "c1")
	require.NoError(t, err)
	second, err := c.GetCustomer(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.gets)
	assert.Equal(t, time.Minute, backend.ttls[detailKey("c1")])

	require.NoError(t, c.Invalidate(ctx, "c1"))
	_, err = c.GetCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, next.gets)
}

func TestCustomerQueryCache_MissingCustomerNotCached(t *testing.T) {
	ctx := context.Background()
	next := newQueries()
	backend := newMemoryBackend()
	c := NewCustomerQueryCache(next, backend, 0)

	d, err := c.GetCustomer(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Empty(t, backend.values)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestCustomerQueryCache_FallsThroughWhenBackendFails(t *testing.T) {
	ctx := context.Background()
	next := newQueries()
	backend := newMemoryBackend()
	backend.failing = true
	c := NewCustomerQueryCache(next, backend, time.Minute)

	d, err := c.GetCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", d.Name)
}

func TestCustomerQueryCache_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	next := newQueries()
	c := NewCustomerQueryCache(next, NewRedisBackend(client), time.Minute)

	d, err := c.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", d.ID)
	assert.Error(t, c.Invalidate(context.Background(), "c1"))
}

func TestNewCustomerQueryCache_Panics(t *testing.T) {
	assert.Panics(t, func() { NewCustomerQueryCache(nil, newMemoryBackend(), 0) })
	assert.Panics(t, func() { NewCustomerQueryCache(newQueries(), nil, 0) })
}
