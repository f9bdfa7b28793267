package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewGormLogger(zap.New(core), GormLoggerConfig{Level: level, SlowThreshold: 50 * time.Millisecond})
	return l, logs
}

func TestGormLoggerMessagesRespectLevel(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)
	ctx := WithCommand(context.Background(), "cmd-1", 42, "/count")

	l.Info(ctx, "ignored")
	l.Warn(ctx, "slow migration", "birthdays")
	l.Error(ctx, "broken")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "slow migration", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "/count", entries[0].ContextMap()["command"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)

	l.LogMode(gormlogger.Info).Info(ctx, "now visible")
	assert.Equal(t, 1, logs.FilterMessage("now visible").Len())
}

func TestGormLoggerTrace(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)
	ctx := context.Background()
	stmt := func() (string, int64) { return "  UPDATE relationships SET start_date = ?", 1 }

	l.Trace(ctx, time.Now(), stmt, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	l.Trace(ctx, time.Now(), stmt, errors.New("disk full"))
	l.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)

	failed := logs.FilterMessage("store.query").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "UPDATE", failed[0].ContextMap()["operation"])
	assert.Equal(t, 1, logs.FilterMessage("store.slow_query").Len())
}

func TestOperationFromSQL(t *testing.T) {
	assert.Equal(t, "SELECT", operationFromSQL("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "INSERT", operationFromSQL("insert into birthdays values (?)"))
	assert.Equal(t, "UNKNOWN", operationFromSQL(""))
}
