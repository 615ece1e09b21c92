package dispatch

import (
	"context"
	"time"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/logx"
)

// Metrics groups the dispatch outcome counters. Any field may be nil.
type Metrics struct {
	Assigned     counter
	RacesLost    counter
	NoCandidates counter
}

// Service decides whether a pending order gets auto-assigned and to whom.
type Service struct {
	orders           orderRepository
	registry         courierRegistry
	settings         settingsSource
	attempts         attemptLog
	notifier         assignmentNotifier
	logger           logx.Logger
	metrics          Metrics
	operationTimeout time.Duration
}

// NewService creates a dispatch Service.
func NewService(
	orders orderRepository,
	registry courierRegistry,
	settings settingsSource,
	attempts attemptLog,
	notifier assignmentNotifier,
	logger logx.Logger,
	metrics Metrics,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		orders:           orders,
		registry:         registry,
		settings:         settings,
		attempts:         attempts,
		notifier:         notifier,
		logger:           logger,
		metrics:          metrics,
		operationTimeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// MaybeDispatch tries to assign the order to the closest eligible courier.
// Safe to call any number of times for the same order: every precondition
// miss (flag off, already assigned, no coordinates, no candidates, race
// lost) is a silent no-op, not an error. Only storage failures on the
// authoritative path propagate.
func (s *Service) MaybeDispatch(ctx context.Context, orderID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.AutoDispatchEnabled {
		s.logger.Debug("auto-dispatch disabled", logx.String("order_id", orderID))
		return nil
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperr.NotFound
	}
	if !order.Dispatchable() {
		s.logger.Debug("order not dispatchable",
			logx.String("order_id", orderID),
			logx.String("status", string(order.Status)),
		)
		return nil
	}

	// Registry outage degrades to "no candidates": the order stays
	// unassigned and the next trigger retries.
	couriers, err := s.registry.Eligible(ctx)
	if err != nil {
		s.logger.Warn("courier registry unavailable, dispatch skipped",
			logx.String("order_id", orderID),
			logx.Any("err", err),
		)
		couriers = nil
	}

	chosen, ok := selectCourier(order, couriers)
	if !ok {
		if s.metrics.NoCandidates != nil {
			s.metrics.NoCandidates.Inc()
		}
		s.logger.Info("no eligible couriers", logx.String("order_id", orderID))
		return nil
	}

	// Audit row first; it records the attempt whether or not the claim
	// below wins. Log write failure must not block assignment.
	if _, err := s.attempts.Record(ctx, order.ID, chosen.courier.ID, chosen.score); err != nil {
		s.logger.Warn("dispatch log write failed",
			logx.String("order_id", order.ID),
			logx.Any("err", err),
		)
	}

	assigned, err := s.orders.Assign(ctx, order.ID, chosen.courier.ID)
	if err != nil {
		return err
	}
	if !assigned {
		if s.metrics.RacesLost != nil {
			s.metrics.RacesLost.Inc()
		}
		s.logger.Debug("assignment race lost",
			logx.String("order_id", order.ID),
			logx.Int64("courier_id", chosen.courier.ID),
		)
		return nil
	}

	if s.metrics.Assigned != nil {
		s.metrics.Assigned.Inc()
	}
	s.logger.Info("courier assigned",
		logx.String("event", "courier_assigned"),
		logx.String("order_id", order.ID),
		logx.Int64("courier_id", chosen.courier.ID),
		logx.Float64("score_km", chosen.score),
	)

	s.notifier.CourierAssigned(ctx, chosen.courier.ID, order, chosen.score)
	return nil
}
