package kafka

import (
	"strings"
	"time"

	"market-dispatch/internal/service/orders"
)

// EventDTO mirrors the storefront order-event payload on the wire.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Domain converts the wire payload to an orders.Event, trimming the
// string fields (some producers pad them).
func (d EventDTO) Domain() orders.Event {
	return orders.Event{
		OrderID:   strings.TrimSpace(d.OrderID),
		Status:    strings.TrimSpace(d.Status),
		CreatedAt: d.CreatedAt,
	}
}
