package dispatch

import (
	"context"

	"market-dispatch/internal/domain"
)

// orderRepository is the slice of order storage the matcher needs.
type orderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Assign reports false when the conditional update affected zero rows,
	// i.e. a concurrent dispatch already claimed the order.
	Assign(ctx context.Context, orderID string, courierID int64) (bool, error)
}

// courierRegistry lists couriers eligible for assignment.
type courierRegistry interface {
	Eligible(ctx context.Context) ([]domain.Courier, error)
}

// settingsSource reads the dispatch feature flag and admin fan-out list
// per invocation.
type settingsSource interface {
	Get(ctx context.Context) (domain.DispatchSettings, error)
}

// attemptLog appends matching attempts to the audit trail.
type attemptLog interface {
	Record(ctx context.Context, orderID string, courierID int64, score float64) (*domain.DispatchLog, error)
}

// assignmentNotifier alerts the chosen courier; implementations are
// best-effort and never return an error.
type assignmentNotifier interface {
	CourierAssigned(ctx context.Context, courierID int64, order *domain.Order, distanceKm float64)
}

type counter interface {
	Inc()
}
