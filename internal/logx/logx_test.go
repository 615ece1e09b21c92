package logx

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields_Constructors(t *testing.T) {
	now := time.Now()

	require.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	require.Equal(t, Field{Key: "k", Value: 1}, Int("k", 1))
	require.Equal(t, Field{Key: "k", Value: int64(2)}, Int64("k", int64(2)))
	require.Equal(t, Field{Key: "k", Value: 1.5}, Float64("k", 1.5))
	require.Equal(t, Field{Key: "k", Value: now}, Time("k", now))
	require.Equal(t, Field{Key: "k", Value: time.Second}, Duration("k", time.Second))
	require.Equal(t, Field{Key: "k", Value: struct{ A int }{A: 1}}, Any("k", struct{ A int }{A: 1}))
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := Nop()
	l.Debug("d", String("k", "v"))
	l.Info("i", Int("n", 1))
	l.Warn("w")
	l.Error("e")

	l2 := l.With(String("x", "y"))
	require.NotNil(t, l2)

	require.NoError(t, l.Sync())
	require.NoError(t, l2.Sync())
}

func TestSlogAdapter_WithAndToSlogArgs(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	l := NewSlogAdapter(base)

	args := toSlogArgs([]Field{
		String("a", "b"),
		Int("n", 1),
	})
	require.Len(t, args, 2)

	l2 := l.With(String("x", "y"))
	require.NotNil(t, l2)

	l2.Info("msg", String("k", "v"))
	require.NoError(t, l2.Sync())
}

func TestSlogAdapter_AllLevels(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewSlogAdapter(base)

	l.Debug("msg", String("k", "v"))
	l.Info("msg", String("k", "v"))
	l.Warn("msg", String("k", "v"))
	l.Error("msg", String("k", "v"))
	require.NoError(t, l.Sync())
}

func TestZapAdapter_RecordsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapAdapter(zap.New(core))

	l.Info("assigned", String("order_id", "o-1"), Float64("score", 1.5))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "assigned", entries[0].Message)
	require.Equal(t, "o-1", entries[0].ContextMap()["order_id"])
	require.Equal(t, 1.5, entries[0].ContextMap()["score"])
}

func TestZapAdapter_With(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapAdapter(zap.New(core)).With(String("component", "dispatch"))

	l.Warn("no candidates")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "no candidates", entries[0].Message)
	require.Equal(t, "dispatch", entries[0].ContextMap()["component"])
}
