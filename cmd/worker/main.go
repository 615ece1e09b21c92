// Command worker consumes storefront order events from Kafka and
// drives dispatch and lifecycle transitions off them.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"market-dispatch/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.NewWorkerRunner().MustRun(app.MustBuildWorkerContainer(ctx))
}
