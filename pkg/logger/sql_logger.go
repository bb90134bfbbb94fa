package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQuery is used when the database config leaves slow_query unset.
const DefaultSlowQuery = 200 * time.Millisecond

// SQLLogger routes gorm's statement log into the request logger, so every
// query carries the request_id of the call that issued it.
//
// Lookups that find nothing are never logged: repositories turn them into
// not-found errors. Unique key violations are logged at warn; two concurrent
// registrations of one document or email end there.
type SQLLogger struct {
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

func NewSQLLogger(level gormlogger.LogLevel, slowQuery time.Duration) *SQLLogger {
	if slowQuery <= 0 {
		slowQuery = DefaultSlowQuery
	}
	return &SQLLogger{level: level, slowQuery: slowQuery}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &SQLLogger{level: level, slowQuery: l.slowQuery}
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.with(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.with(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.with(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent || errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	operation, table := statementTarget(sql)
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Int64("rows", rows),
		zap.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000),
		zap.String("sql", sql),
	}
	log := l.with(ctx)

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if l.level >= gormlogger.Warn {
			log.Warn("sql duplicate key", append(fields, zap.Error(err))...)
		}
	case err != nil:
		if l.level >= gormlogger.Error {
			log.Error("sql failed", append(fields, zap.Error(err))...)
		}
	case elapsed > l.slowQuery:
		if l.level >= gormlogger.Warn {
			log.Warn("slow sql", append(fields, zap.Duration("threshold", l.slowQuery))...)
		}
	default:
		if l.level >= gormlogger.Info {
			log.Info("sql", fields...)
		}
	}
}

// with resolves the logger per call; the gorm logger is built before Init
// replaces the global one.
func (l *SQLLogger) with(ctx context.Context) *zap.Logger {
	return FromContext(ctx).With(zap.String("component", "db"))
}

// statementTarget reads the verb and the first table out of a statement.
// Table names may be quoted with backticks or double quotes.
func statementTarget(sql string) (operation, table string) {
	words := strings.Fields(sql)
	if len(words) == 0 {
		return "", ""
	}
	operation = strings.ToUpper(words[0])

	var after string
	switch operation {
	case "SELECT", "DELETE":
		after = "FROM"
	case "INSERT", "REPLACE":
		after = "INTO"
	case "UPDATE":
		if len(words) > 1 {
			return operation, strings.Trim(words[1], "`\"")
		}
		return operation, ""
	default:
		return operation, ""
	}
	for i := 1; i < len(words)-1; i++ {
		if strings.EqualFold(words[i], after) {
			return operation, strings.Trim(words[i+1], "`\"(,")
		}
	}
	return operation, ""
}
