package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"market-dispatch/internal/logx"
	testlog "market-dispatch/internal/testutil"
)

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

// loggerContainer builds a minimal container carrying only a recording
// logger, enough for MustRun's exit logging.
func loggerContainer(t *testing.T) (*testlog.Recorder, *dig.Container) {
	t.Helper()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(func() logx.Logger { return rec.Logger() }))
	return rec, container
}

func runnerReturning(err error) *Runner {
	return &Runner{runFn: func(*dig.Container) error { return err }}
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestMustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	rec, container := loggerContainer(t)

	runnerReturning(context.Canceled).MustRun(container)
	require.True(t, hasMsg(rec.Entries(), "shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	rec, container := loggerContainer(t)

	runnerReturning(context.DeadlineExceeded).MustRun(container)
	require.True(t, hasMsg(rec.Entries(), "startup aborted: startup timeout exceeded"))
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	require.NotNil(t, r)
	require.NotNil(t, r.runFn)
	require.Equal(t, fmt.Sprintf("%p", run), fmt.Sprintf("%p", r.runFn))
}

func TestRun_InvokesAppRunViaContainer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := dig.New()
	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(func() logx.Logger { return logx.Nop() }))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(container)
	require.ErrorIs(t, err, context.Canceled)
}
