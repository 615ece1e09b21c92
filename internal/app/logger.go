package app

import (
	"log/slog"
	"os"

	"go.uber.org/zap"

	"market-dispatch/internal/config"
	"market-dispatch/internal/logx"
)

// NewLogger builds the process logger from config. slog is the default;
// zap is kept for installations standardized on it.
func NewLogger(cfg *config.Config) logx.Logger {
	if cfg.Logger == "zap" {
		z, err := zap.NewProduction()
		if err == nil {
			return logx.NewZapAdapter(z)
		}
		// fall through to slog if zap refuses to build
	}
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
