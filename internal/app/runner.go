package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"market-dispatch/internal/logx"
)

// Runner runs the HTTP server
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, context.Canceled):
		logVia(container, "shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logVia(container, "startup aborted: startup timeout exceeded")
	default:
		log.Fatalf("run error: %v", err)
	}
}

func logVia(container *dig.Container, msg string) {
	if err := container.Invoke(func(logger logx.Logger) { logger.Info(msg) }); err != nil {
		log.Println(msg)
	}
}

type runIn struct {
	dig.In

	Ctx    context.Context
	Server *http.Server
	Pprof  *http.Server `name:"pprof_server" optional:"true"`
	Pool   *pgxpool.Pool
	Logger logx.Logger
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger)
		if in.Pprof != nil {
			startPprofServer(in.Pprof, in.Logger)
		}
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in.Pool, in.Server, in.Pprof, in.Logger)
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("market-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprofServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("pprof listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Any("error", err))
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down market-dispatch...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("error", err))
	}
}

func closeResources(pool *pgxpool.Pool, server *http.Server, pprof *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Any("error", err))
	}
	if pprof != nil {
		if err := pprof.Close(); err != nil {
			logger.Error("pprof close error", logx.Any("error", err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
