package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"market-dispatch/internal/config"
	"market-dispatch/internal/gateway/telegram"
	"market-dispatch/internal/http/handlers"
	"market-dispatch/internal/http/middleware/ratelimit"
	"market-dispatch/internal/http/pprofserver"
	"market-dispatch/internal/http/router"
	"market-dispatch/internal/logx"
	"market-dispatch/internal/migrate"
	"market-dispatch/internal/repository"
	"market-dispatch/internal/service/botsession"
	"market-dispatch/internal/service/courier"
	"market-dispatch/internal/service/dispatch"
	"market-dispatch/internal/service/lifecycle"
	"market-dispatch/internal/service/notify"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	migrateUp func(string) error
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		migrateUp: migrate.Up,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrateUp sets the schema migration function
func (b *ContainerBuilder) WithMigrateUp(fn func(string) error) *ContainerBuilder {
	if fn != nil {
		b.migrateUp = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrateUp); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		newCounters,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
	migrateUp func(string) error,
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrateUp(cfg.DB.DSN()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewCourierRepo,
		repository.NewDispatchLogRepo,
		repository.NewSettingsRepo,
		repository.NewBotSessionRepo,
		func() time.Duration { return 3 * time.Second },
		func(cfg *config.Config) *telegram.Client {
			return telegram.NewClient(cfg.Telegram)
		},
		func(
			client *telegram.Client,
			couriers *repository.CourierRepo,
			logger logx.Logger,
			counters Counters,
			timeout time.Duration,
		) *notify.Notifier {
			return notify.NewNotifier(client, couriers, logger, counters.NotifyFailures, timeout)
		},
		func(
			orders *repository.OrderRepo,
			couriers *repository.CourierRepo,
			settings *repository.SettingsRepo,
			attempts *repository.DispatchLogRepo,
			notifier *notify.Notifier,
			logger logx.Logger,
			counters Counters,
			timeout time.Duration,
		) *dispatch.Service {
			return dispatch.NewService(orders, couriers, settings, attempts, notifier, logger, dispatch.Metrics{
				Assigned:     counters.DispatchAssigned,
				RacesLost:    counters.DispatchRacesLost,
				NoCandidates: counters.DispatchNoCandidates,
			}, timeout)
		},
		func(
			orders *repository.OrderRepo,
			settings *repository.SettingsRepo,
			notifier *notify.Notifier,
			logger logx.Logger,
			timeout time.Duration,
		) *lifecycle.Service {
			return lifecycle.NewService(orders, settings, notifier, logger, timeout)
		},
		func(
			sessions *repository.BotSessionRepo,
			couriers *repository.CourierRepo,
			logger logx.Logger,
			timeout time.Duration,
		) *botsession.Flow {
			return botsession.NewFlow(sessions, couriers, logger, timeout)
		},
		func(repo *repository.CourierRepo, timeout time.Duration) *courier.Service {
			return courier.NewService(repo, timeout)
		},
	)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// providePprofServer returns the debug server, or a nil one when the
// address is not configured.
func providePprofServer(cfg *config.Config) pprofServerOut {
	if cfg.PprofAddr == "" {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: &http.Server{
		Addr: cfg.PprofAddr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.PprofUser,
			Pass: cfg.PprofPass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewCourierUsecase,
		handlers.NewCourierHandler,
		func(
			logger logx.Logger,
			orders *repository.OrderRepo,
			dispatchUC *dispatch.Service,
			lifecycleUC *lifecycle.Service,
		) *handlers.OrderHandler {
			return handlers.NewOrderHandler(
				logger,
				orders,
				handlers.NewDispatchUsecase(dispatchUC),
				handlers.NewLifecycleUsecase(lifecycleUC),
			)
		},
		newWebhookRateLimiter,
		newRateLimitClock,
		func(
			logger logx.Logger,
			flow *botsession.Flow,
			actions *lifecycle.Service,
			couriers *repository.CourierRepo,
			orders *repository.OrderRepo,
			client *telegram.Client,
			limiter ratelimit.Limiter,
			counters Counters,
		) *handlers.WebhookHandler {
			return handlers.NewWebhookHandler(
				logger, flow, actions, couriers, orders, client,
				limiter, counters.WebhookRateLimited,
			)
		},
		func(
			logger logx.Logger,
			base *handlers.Handlers,
			couriers *handlers.CourierHandler,
			orders *handlers.OrderHandler,
			webhook *handlers.WebhookHandler,
		) http.Handler {
			return router.New(router.Deps{
				Logger:   logger,
				Base:     base,
				Couriers: couriers,
				Orders:   orders,
				Webhook:  webhook,
			})
		},
		serverProvider,
		providePprofServer,
	)
}
