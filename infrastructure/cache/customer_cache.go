// Package cache keeps customer read projections in Redis in front of the
// database query service.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"store/domain/customer"
	"store/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultTTL = 5 * time.Minute

	keyPrefix = "store:customer:"
)

// Backend is the slice of the Redis API the cache uses.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisBackend struct {
	client redis.UniversalClient
}

// NewRedisBackend adapts a go-redis client.
func NewRedisBackend(client redis.UniversalClient) Backend {
	return &redisBackend{client: client}
}

func (b *redisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *redisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b *redisBackend) Del(ctx context.Context, keys ...string) error {
	return b.client.Del(ctx, keys...).Err()
}

// CustomerQueryCache decorates a customer.QueryService and caches customer
// details. Lists and order aggregates change with every order placed and go
// straight to the database. Cache failures are logged and fall through.
type CustomerQueryCache struct {
	next    customer.QueryService
	backend Backend
	ttl     time.Duration
}

func NewCustomerQueryCache(next customer.QueryService, backend Backend, ttl time.Duration) *CustomerQueryCache {
	if next == nil || backend == nil {
		panic("cache: NewCustomerQueryCache requires a query service and a backend")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CustomerQueryCache{next: next, backend: backend, ttl: ttl}
}

func detailKey(id string) string {
	return keyPrefix + id
}

func (c *CustomerQueryCache) GetCustomer(ctx context.Context, id string) (*customer.Detail, error) {
	log := logger.FromContext(ctx)
	key := detailKey(id)

	raw, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		log.Warn("customer cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var d customer.Detail
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			return &d, nil
		}
		log.Warn("discarding unreadable customer cache entry", zap.String("key", key))
	}

	d, err := c.next.GetCustomer(ctx, id)
	if err != nil || d == nil {
		return d, err
	}

	data, err := json.Marshal(d)
	if err != nil {
		return d, nil
	}
	if err := c.backend.Set(ctx, key, string(data), c.ttl); err != nil {
		log.Warn("customer cache write failed", zap.String("key", key), zap.Error(err))
	}
	return d, nil
}

func (c *CustomerQueryCache) ListCustomers(ctx context.Context) ([]customer.ListItem, error) {
	return c.next.ListCustomers(ctx)
}

func (c *CustomerQueryCache) ListOrders(ctx context.Context, customerID string) ([]customer.OrderSummary, error) {
	return c.next.ListOrders(ctx, customerID)
}

func (c *CustomerQueryCache) CountOrders(ctx context.Context, document string) (*customer.OrdersCount, error) {
	return c.next.CountOrders(ctx, document)
}

// Invalidate drops the cached detail of the customer.
func (c *CustomerQueryCache) Invalidate(ctx context.Context, id string) error {
	return c.backend.Del(ctx, detailKey(id))
}

var _ customer.QueryService = (*CustomerQueryCache)(nil)
