package logx

import "log/slog"

// slogAdapter routes logx calls to a *slog.Logger. It is the default
// backend when no zap logger is configured.
type slogAdapter struct {
	base *slog.Logger
}

// NewSlogAdapter wraps l in the Logger interface.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &slogAdapter{base: l}
}

func (a *slogAdapter) Debug(msg string, fields ...Field) { a.base.Debug(msg, toSlogArgs(fields)...) }
func (a *slogAdapter) Info(msg string, fields ...Field)  { a.base.Info(msg, toSlogArgs(fields)...) }
func (a *slogAdapter) Warn(msg string, fields ...Field)  { a.base.Warn(msg, toSlogArgs(fields)...) }
func (a *slogAdapter) Error(msg string, fields ...Field) { a.base.Error(msg, toSlogArgs(fields)...) }

func (a *slogAdapter) With(fields ...Field) Logger {
	return &slogAdapter{base: a.base.With(toSlogArgs(fields)...)}
}

// Sync is a no-op: slog handlers write through.
func (a *slogAdapter) Sync() error { return nil }

func toSlogArgs(fields []Field) []any {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = slog.Any(f.Key, f.Value)
	}
	return args
}
