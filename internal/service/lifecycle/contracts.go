package lifecycle

import (
	"context"

	"market-dispatch/internal/domain"
)

// orderStore is the slice of order storage the lifecycle driver needs.
type orderStore interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus reports false when the from-status precondition no
	// longer holds, i.e. a concurrent writer moved the order first.
	UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
	MarkPaid(ctx context.Context, orderID string) (bool, error)
	ActiveByCourier(ctx context.Context, courierID int64) (*domain.Order, error)
	Cancel(ctx context.Context, orderID string) (*int64, bool, error)
}

// settingsSource reads the admin fan-out list per invocation.
type settingsSource interface {
	Get(ctx context.Context) (domain.DispatchSettings, error)
}

// changeNotifier broadcasts state changes to admin chats; implementations
// are best-effort and never return an error.
type changeNotifier interface {
	StatusChanged(ctx context.Context, adminIDs []int64, order *domain.Order)
}
