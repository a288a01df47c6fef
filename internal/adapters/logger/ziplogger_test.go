package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level LogLevel) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level.zapLevel())
	return NewFromZap(zap.New(core)), logs
}

func TestZapLogger_InfoIncludesFields(t *testing.T) {
	l, logs := newObservedLogger(LevelInfo)
	l.Info(context.Background(), "order placed", map[string]interface{}{"symbol": "BTCUSDT"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "order placed", entry.Message)
	assert.Equal(t, "BTCUSDT", entry.ContextMap()["symbol"])
}

func TestZapLogger_ErrorAttachesErrField(t *testing.T) {
	l, logs := newObservedLogger(LevelInfo)
	l.Error(context.Background(), errors.New("boom"), "request failed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
}

func TestZapLogger_DebugBelowConfiguredLevelIsDropped(t *testing.T) {
	l, logs := newObservedLogger(LevelInfo)
	l.Debug(context.Background(), "verbose detail")
	assert.Equal(t, 0, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
