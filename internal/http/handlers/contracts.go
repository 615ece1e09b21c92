package handlers

import (
	"context"

	"market-dispatch/internal/domain"
	"market-dispatch/internal/service/courier"
	"market-dispatch/internal/service/dispatch"
	"market-dispatch/internal/service/lifecycle"
)

type courierUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error)
}

// NewCourierUsecase wires a courier Service into a courierUsecase.
func NewCourierUsecase(service *courier.Service) courierUsecase {
	return service
}

type dispatchUsecase interface {
	MaybeDispatch(ctx context.Context, orderID string) error
}

// NewDispatchUsecase wires a dispatch Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type lifecycleUsecase interface {
	ApplyAction(ctx context.Context, orderID string, action domain.Action) (*domain.Order, error)
	Cancel(ctx context.Context, orderID string) error
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
}

// NewLifecycleUsecase wires a lifecycle Service into a lifecycleUsecase.
func NewLifecycleUsecase(svc *lifecycle.Service) lifecycleUsecase {
	return svc
}

// orderReader fetches order state for the read-side endpoints.
type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
