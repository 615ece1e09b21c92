package notify

import (
	"context"
	"fmt"
	"time"

	"market-dispatch/internal/domain"
	"market-dispatch/internal/gateway/telegram"
	"market-dispatch/internal/logx"
)

// Notifier delivers human-readable alerts through the messaging channel.
// Every method is best-effort: failures are counted and logged, never
// returned, so the dispatch and lifecycle paths commit their state writes
// regardless of channel health.
type Notifier struct {
	messenger messenger
	couriers  courierDirectory
	logger    logx.Logger
	failures  counter
	timeout   time.Duration
}

// NewNotifier creates a Notifier.
func NewNotifier(m messenger, couriers courierDirectory, logger logx.Logger, failures counter, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Notifier{
		messenger: m,
		couriers:  couriers,
		logger:    logger,
		failures:  failures,
		timeout:   timeout,
	}
}

// CourierAssigned alerts the courier about a fresh assignment, attaching
// the action menu. A courier without a linked chat is silently skipped.
func (n *Notifier) CourierAssigned(ctx context.Context, courierID int64, order *domain.Order, distanceKm float64) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	c, err := n.couriers.Get(ctx, courierID)
	if err != nil {
		n.fail("courier lookup for notification failed", order.ID, err)
		return
	}
	if c == nil || c.ChatID == nil {
		n.logger.Debug("courier has no linked chat, notification skipped",
			logx.Int64("courier_id", courierID),
			logx.String("order_id", order.ID),
		)
		return
	}

	text := fmt.Sprintf("Новый заказ %s\nРасстояние: %.1f км", order.ID, distanceKm)
	if err := n.messenger.SendMessage(ctx, *c.ChatID, text, telegram.OrderActionsKeyboard(order.ID)); err != nil {
		n.fail("courier notification failed", order.ID, err)
	}
}

// StatusChanged fans a state-change summary out to every configured admin
// chat. Each handle is delivered independently: one failure does not stop
// the rest.
func (n *Notifier) StatusChanged(ctx context.Context, adminIDs []int64, order *domain.Order) {
	if len(adminIDs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text := fmt.Sprintf("Заказ %s: статус %s, оплата %s", order.ID, order.Status, order.PaymentStatus)
	for _, chatID := range adminIDs {
		if err := n.messenger.SendMessage(ctx, chatID, text, nil); err != nil {
			n.fail("admin notification failed", order.ID, err)
		}
	}
}

func (n *Notifier) fail(msg, orderID string, err error) {
	if n.failures != nil {
		n.failures.Inc()
	}
	n.logger.Warn(msg,
		logx.String("order_id", orderID),
		logx.Any("err", err),
	)
}
