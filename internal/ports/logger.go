package ports

import "context"

// Logger is the kernel's structured logging seam. Inner layers never log
// directly to a concrete backend; they take a Logger (§7 "logging happens
// at the outermost boundary... inner layers propagate without logging" —
// the kernel's own transport spans are the one sanctioned exception, and
// even those go through this interface).
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	Error(ctx context.Context, err error, msg string, fields ...map[string]interface{})
}

// NopLogger discards everything; useful as a safe zero value in tests and
// builder defaults.
type NopLogger struct{}

func (NopLogger) Debug(context.Context, string, ...map[string]interface{})            {}
func (NopLogger) Info(context.Context, string, ...map[string]interface{})             {}
func (NopLogger) Warn(context.Context, string, ...map[string]interface{})             {}
func (NopLogger) Error(context.Context, error, string, ...map[string]interface{}) {}
