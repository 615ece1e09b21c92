package app

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"market-dispatch/internal/config"
	"market-dispatch/internal/logx"
	"market-dispatch/internal/service/dispatch"
	"market-dispatch/internal/service/lifecycle"
	"market-dispatch/internal/service/orders"
	"market-dispatch/internal/transport/kafka"
)

// MustBuildWorker builds the worker dig container: core, DB and services
// plus the Kafka consumer, without the HTTP surface.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
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
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns the worker dig container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(s *dispatch.Service) orders.DispatchPort { return s },
		func(s *lifecycle.Service) orders.LifecyclePort { return s },
		orders.NewProcessor,
		makeOrdersHandler,
		func(logger logx.Logger, cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

func makeOrdersHandler(p *orders.Processor) kafka.HandleFunc {
	return p.Handle
}
