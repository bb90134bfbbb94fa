package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"store/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(Replace(zap.New(core)))
	return logs
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func trace(l *SQLLogger, ctx context.Context, elapsed time.Duration, sql string, err error) {
	l.Trace(ctx, time.Now().Add(-elapsed), func() (string, int64) { return sql, 1 }, err)
}

func TestSQLLogger_Levels(t *testing.T) {
	cases := []struct {
		name      string
		level     gormlogger.LogLevel
		wantInfo  bool
		wantTrace bool
	}{
		{"warn", gormlogger.Warn, false, false},
		{"info", gormlogger.Info, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := observe(t)
			l := NewSQLLogger(tc.level, 0)
			require.NotNil(t, l.LogMode(gormlogger.Info))

			ctx := context.Background()
			l.Info(ctx, "info %d", 1)
			l.Warn(ctx, "warn %d", 2)
			l.Error(ctx, "error %d", 3)
			trace(l, ctx, 0, "SELECT * FROM `customers` WHERE id = ?", nil)

			got := messages(logs)
			assert.Contains(t, got, "warn 2")
			assert.Contains(t, got, "error 3")
			if tc.wantInfo {
				assert.Contains(t, got, "info 1")
			} else {
				assert.NotContains(t, got, "info 1")
			}
			if tc.wantTrace {
				entries := logs.FilterMessage("sql").All()
				require.Len(t, entries, 1)
				fields := entries[0].ContextMap()
				assert.Equal(t, "SELECT", fields["operation"])
				assert.Equal(t, "customers", fields["table"])
				assert.Equal(t, "db", fields["component"])
			} else {
				assert.NotContains(t, got, "sql")
			}
		})
	}
}

func TestSQLLogger_SlowQueryCarriesRequestID(t *testing.T) {
	logs := observe(t)
	l := NewSQLLogger(gormlogger.Warn, 10*time.Millisecond)
	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")

	trace(l, ctx, 50*time.Millisecond, "UPDATE `orders` SET `status`=? WHERE id = ? AND version = ?", nil)

	slow := logs.FilterMessage("slow sql").All()
	require.Len(t, slow, 1)
	fields := slow[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "UPDATE", fields["operation"])
	assert.Equal(t, "orders", fields["table"])
}

func TestSQLLogger_Errors(t *testing.T) {
	logs := observe(t)
	l := NewSQLLogger(gormlogger.Warn, 0)
	ctx := context.Background()

	trace(l, ctx, 0, "SELECT * FROM customers WHERE id = ?", gormlogger.ErrRecordNotFound)
	trace(l, ctx, 0, "INSERT INTO `customers` (`id`) VALUES (?)", gorm.ErrDuplicatedKey)
	trace(l, ctx, 0, "DELETE FROM addresses WHERE id = ?", errors.New("connection reset"))

	assert.Equal(t, []string{"sql duplicate key", "sql failed"}, messages(logs))
	dup := logs.FilterMessage("sql duplicate key").All()
	require.Len(t, dup, 1)
	assert.Equal(t, zapcore.WarnLevel, dup[0].Level)
	assert.Equal(t, "customers", dup[0].ContextMap()["table"])
}

func TestSQLLogger_Silent(t *testing.T) {
	logs := observe(t)
	trace(NewSQLLogger(gormlogger.Silent, 0), context.Background(), time.Second, "SELECT 1", nil)
	assert.Zero(t, logs.Len())
}

func TestStatementTarget(t *testing.T) {
	cases := []struct {
		sql       string
		operation string
		table     string
	}{
		{"SELECT count(*) FROM `orders` WHERE customer_id = ?", "SELECT", "orders"},
		{"insert into \"deliveries\" (\"id\") values (?)", "INSERT", "deliveries"},
		{"UPDATE `customers` SET `version`=?", "UPDATE", "customers"},
		{"DELETE FROM outbox_events WHERE id = ?", "DELETE", "outbox_events"},
		{"PRAGMA foreign_keys = ON", "PRAGMA", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		operation, table := statementTarget(tc.sql)
		assert.Equal(t, tc.operation, operation, tc.sql)
		assert.Equal(t, tc.table, table, tc.sql)
	}
}
