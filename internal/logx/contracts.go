// Package logx defines the logging facade used across the service.
// Concrete backends (slog, zap) live behind the Logger interface so
// packages never import a logging library directly.
package logx

import "time"

// Logger is the structured logger every package depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one key-value attribute attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Typed constructors keep call sites short; all of them produce the
// same Field, the name only documents intent.

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Any wraps a value of arbitrary type.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }
