// Package logger implements ports.Logger backed by go.uber.org/zap, the
// ecosystem way shown elsewhere in the pack rather than a hand-rolled
// level filter and field formatter.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"connectorkit/internal/ports"
)

// LogLevel mirrors the teacher's own closed level set so config and call
// sites read the same way; it maps onto zapcore.Level at construction.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a string level to LogLevel, defaulting to Info for
// anything unrecognized.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// ZapLogger implements ports.Logger over a *zap.Logger.
type ZapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a production JSON encoder (Stderr) at the given
// level. Callers needing console-friendly output during local development
// should construct their own zap.Config and use NewFromZap instead.
func NewZapLogger(level LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{z: z}, nil
}

// NewFromZap wraps an already-configured *zap.Logger.
func NewFromZap(z *zap.Logger) *ZapLogger { return &ZapLogger{z: z} }

func toZapFields(fields ...map[string]interface{}) []zap.Field {
	if len(fields) == 0 || fields[0] == nil {
		return nil
	}
	out := make([]zap.Field, 0, len(fields[0]))
	for k, v := range fields[0] {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.z.Debug(msg, toZapFields(fields...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.z.Info(msg, toZapFields(fields...)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.z.Warn(msg, toZapFields(fields...)...)
}

func (l *ZapLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	f := toZapFields(fields...)
	if err != nil {
		f = append(f, zap.Error(err))
	}
	l.z.Error(msg, f...)
}

// Sync flushes any buffered log entries; callers should defer this at
// process shutdown.
func (l *ZapLogger) Sync() error { return l.z.Sync() }

var _ ports.Logger = (*ZapLogger)(nil)
