package orders

import (
	"context"

	"market-dispatch/internal/domain"
)

// DispatchPort abstracts the matcher operation the Processor triggers on
// fresh orders.
type DispatchPort interface {
	MaybeDispatch(ctx context.Context, orderID string) error
}

// LifecyclePort abstracts the state-machine operations the Processor
// triggers on cancellation and payment events.
type LifecyclePort interface {
	Cancel(ctx context.Context, orderID string) error
	ApplyAction(ctx context.Context, orderID string, action domain.Action) (*domain.Order, error)
}
