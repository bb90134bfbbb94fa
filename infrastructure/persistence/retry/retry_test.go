package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"store/domain/order"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"concurrent modification", fmt.Errorf("save: %w", order.NewConcurrentModificationError("o1")), true},
		{"deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"lock wait", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"duplicate entry", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"gorm duplicate", gorm.ErrDuplicatedKey, false},
		{"invalid transaction", gorm.ErrInvalidTransaction, true},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryableError(tc.err, cfg))
		})
	}

	cfg.RetryOnDeadlock = false
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialDelay = 10 * time.Millisecond
	cfg.MaxDelay = 25 * time.Millisecond

	assert.Zero(t, ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 10*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 20*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 25*time.Millisecond, ExponentialBackoffWithJitter(3, cfg))
}

func TestExecuteWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries conflicts until success", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(ctx, fastConfig(), func(context.Context) error {
			calls++
			if calls < 3 {
				return order.NewConcurrentModificationError("o1")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(ctx, fastConfig(), func(context.Context) error {
			calls++
			return order.NewConcurrentModificationError("o1")
		})
		assert.ErrorIs(t, err, order.ErrConcurrentModification)
		assert.Equal(t, DefaultConfig.MaxAttempts, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := ExecuteWithRetry(ctx, fastConfig(), func(context.Context) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("disabled runs once", func(t *testing.T) {
		cfg := fastConfig()
		cfg.Enabled = false
		calls := 0
		_ = ExecuteWithRetry(ctx, cfg, func(context.Context) error {
			calls++
			return order.NewConcurrentModificationError("o1")
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		err := ExecuteWithRetry(canceled, fastConfig(), func(context.Context) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
