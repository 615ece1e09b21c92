package lifecycle

import (
	"context"
	"time"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
	"market-dispatch/internal/logx"
)

// Service drives orders through the delivery and payment state machines.
// Delivery status moves only along legal transitions; payment status is a
// parallel track that settles independently.
type Service struct {
	orders           orderStore
	settings         settingsSource
	notifier         changeNotifier
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates a lifecycle Service.
func NewService(orders orderStore, settings settingsSource, notifier changeNotifier, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		orders:           orders,
		settings:         settings,
		notifier:         notifier,
		logger:           logger,
		operationTimeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ApplyCourierAction resolves the courier's single active order and
// applies the action code to it. Buttons carry bare codes, not order ids,
// so a courier with nothing in flight gets NotFound.
func (s *Service) ApplyCourierAction(ctx context.Context, courierID int64, action domain.Action) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if !action.Valid() {
		return nil, apperr.Invalid
	}

	order, err := s.orders.ActiveByCourier(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound
	}
	return s.apply(ctx, order, action)
}

// ApplyAction applies an action code to an explicit order, the admin-side
// entry point.
func (s *Service) ApplyAction(ctx context.Context, orderID string, action domain.Action) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if !action.Valid() {
		return nil, apperr.Invalid
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound
	}
	return s.apply(ctx, order, action)
}

func (s *Service) apply(ctx context.Context, order *domain.Order, action domain.Action) (*domain.Order, error) {
	if action == domain.ActionToPaid {
		return s.markPaid(ctx, order)
	}

	target, ok := action.TargetStatus()
	if !ok {
		return nil, apperr.Invalid
	}
	if !order.Status.CanTransitionTo(target) {
		s.logger.Debug("illegal transition rejected",
			logx.String("order_id", order.ID),
			logx.String("from", string(order.Status)),
			logx.String("to", string(target)),
		)
		return nil, apperr.Conflict
	}

	moved, err := s.orders.UpdateStatus(ctx, order.ID, order.Status, target)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Somebody beat this writer between the read and the update.
		return nil, apperr.Conflict
	}

	order.Status = target
	s.logger.Info("order status changed",
		logx.String("event", "status_changed"),
		logx.String("order_id", order.ID),
		logx.String("status", string(target)),
	)
	s.broadcast(ctx, order)
	return order, nil
}

func (s *Service) markPaid(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	changed, err := s.orders.MarkPaid(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Already paid; repeated confirmations settle silently.
		return order, nil
	}

	order.PaymentStatus = domain.PaymentPaid
	s.logger.Info("order paid",
		logx.String("event", "payment_confirmed"),
		logx.String("order_id", order.ID),
	)
	s.broadcast(ctx, order)
	return order, nil
}

// Cancel moves a pre-delivered order to cancelled. Orders already
// delivered or in a terminal state yield Conflict.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperr.NotFound
	}
	if !order.Status.CanTransitionTo(domain.OrderCancelled) {
		return apperr.Conflict
	}

	courierID, cancelled, err := s.orders.Cancel(ctx, orderID)
	if err != nil {
		return err
	}
	if !cancelled {
		// Raced past the cancellable window between read and write.
		return apperr.Conflict
	}

	order.Status = domain.OrderCancelled
	order.CourierID = courierID
	s.logger.Info("order cancelled",
		logx.String("event", "order_cancelled"),
		logx.String("order_id", orderID),
	)
	s.broadcast(ctx, order)
	return nil
}

// Complete closes out a delivered order, the final admin acknowledgement.
func (s *Service) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound
	}
	if !order.Status.CanTransitionTo(domain.OrderCompleted) {
		return nil, apperr.Conflict
	}

	moved, err := s.orders.UpdateStatus(ctx, orderID, order.Status, domain.OrderCompleted)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperr.Conflict
	}

	order.Status = domain.OrderCompleted
	s.logger.Info("order completed",
		logx.String("event", "order_completed"),
		logx.String("order_id", orderID),
	)
	s.broadcast(ctx, order)
	return order, nil
}

func (s *Service) broadcast(ctx context.Context, order *domain.Order) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Warn("settings read failed, admin broadcast skipped",
			logx.String("order_id", order.ID),
			logx.Any("err", err),
		)
		return
	}
	s.notifier.StatusChanged(ctx, settings.AdminChatIDs, order)
}
