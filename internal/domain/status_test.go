package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range allowedOrderStatuses {
		require.True(t, s.Valid(), "status %q must be valid", s)
	}
	require.False(t, OrderStatus("boom").Valid())
	require.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	require.True(t, OrderCreated.CanTransitionTo(OrderAssigned))
	require.True(t, OrderAssigned.CanTransitionTo(OrderDelivering))
	require.True(t, OrderPickedUp.CanTransitionTo(OrderDelivering))
	require.True(t, OrderDelivering.CanTransitionTo(OrderDelivered))
	require.True(t, OrderDelivered.CanTransitionTo(OrderCompleted))

	// delivering cannot be re-entered or skipped backwards
	require.False(t, OrderDelivering.CanTransitionTo(OrderAssigned))
	require.False(t, OrderDelivered.CanTransitionTo(OrderDelivering))
	require.False(t, OrderCreated.CanTransitionTo(OrderDelivered))
}

func TestOrderStatus_CancellationWindow(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{OrderCreated, OrderAssigned, OrderPickedUp, OrderDelivering} {
		require.True(t, s.CanTransitionTo(OrderCancelled), "cancel from %q", s)
	}
	for _, s := range []OrderStatus{OrderDelivered, OrderCompleted, OrderCancelled} {
		require.False(t, s.CanTransitionTo(OrderCancelled), "cancel from %q", s)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.True(t, OrderCompleted.Terminal())
	require.True(t, OrderCancelled.Terminal())
	require.False(t, OrderDelivered.Terminal())
	require.False(t, OrderCreated.Terminal())
}

func TestAction_TargetStatus(t *testing.T) {
	t.Parallel()

	st, ok := ActionToDelivery.TargetStatus()
	require.True(t, ok)
	require.Equal(t, OrderDelivering, st)

	st, ok = ActionToDelivered.TargetStatus()
	require.True(t, ok)
	require.Equal(t, OrderDelivered, st)

	_, ok = ActionToPaid.TargetStatus()
	require.False(t, ok)
}

func TestAction_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, ActionToDelivery.Valid())
	require.True(t, ActionToDelivered.Valid())
	require.True(t, ActionToPaid.Valid())
	require.False(t, Action("view_order").Valid())
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	require.True(t, ValidatePhone("+99890123456"))
	require.True(t, ValidatePhone("+79001234567"))
	require.False(t, ValidatePhone("998901234567"))
	require.False(t, ValidatePhone("+123"))
	require.False(t, ValidatePhone(""))
}
