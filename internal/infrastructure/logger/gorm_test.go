package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func batchQuery() (string, int64) {
	return "SELECT * FROM batches WHERE remaining_quantity > 0 ORDER BY expiry_date", 3
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := newGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)

	var _ gormlogger.Interface = gl
}

func TestGormLogger_WithSlowThreshold(t *testing.T) {
	gl, _ := newGormLogger(gormlogger.Warn)
	tuned := gl.WithSlowThreshold(500 * time.Millisecond)

	assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)
	assert.Equal(t, 500*time.Millisecond, tuned.slowThreshold)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newGormLogger(gormlogger.Info)
	demoted := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.logLevel)

	clone, ok := demoted.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLogger_Levels(t *testing.T) {
	t.Run("info logged at info level", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Info)
		gl.Info(context.Background(), "migrating %s", "batches")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "migrating batches")
	})

	t.Run("info suppressed at silent level", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Silent)
		gl.Info(context.Background(), "migrating")

		assert.Empty(t, recorded.All())
	})

	t.Run("warn logged at warn level", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Warn)
		gl.Warn(context.Background(), "retrying %d", 2)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("error logged at error level", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Error)
		gl.Error(context.Background(), "connection lost")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed query logs SQL error", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), batchQuery, errors.New("deadlock detected"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL error", logs[0].Message)
	})

	t.Run("record not found is never logged", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), batchQuery, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("slow query logs warning", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Warn)
		gl = gl.WithSlowThreshold(time.Nanosecond)
		gl.Trace(context.Background(), time.Now().Add(-time.Second), batchQuery, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "Slow SQL", logs[0].Message)
	})

	t.Run("zero threshold disables slow warnings", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Warn)
		gl = gl.WithSlowThreshold(0)
		gl.Trace(context.Background(), time.Now().Add(-time.Second), batchQuery, nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("normal query logs at debug", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), batchQuery, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), batchQuery, nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("request ID from context is attached", func(t *testing.T) {
		gl, recorded := newGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-sql-1")

		gl.Trace(ctx, time.Now(), batchQuery, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		for _, f := range logs[0].Context {
			if f.Key == "request_id" {
				assert.Equal(t, "req-sql-1", f.String)
				return
			}
		}
		t.Fatal("request_id field missing")
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
