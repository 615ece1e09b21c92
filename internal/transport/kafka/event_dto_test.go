package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"market-dispatch/internal/service/orders"
	"market-dispatch/internal/transport/kafka"
)

func TestEventDTO_Domain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 2, 3, 4, 5, 0, time.UTC)

	dto := kafka.EventDTO{
		OrderID:   "  order-1  ",
		Status:    "  created  ",
		CreatedAt: ts,
	}

	require.Equal(t, orders.Event{
		OrderID:   "order-1",
		Status:    "created",
		CreatedAt: ts,
	}, dto.Domain())
}
