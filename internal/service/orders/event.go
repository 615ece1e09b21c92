package orders

import (
	"time"
)

// Event is a single storefront order event. Only the id and the status
// travel on the wire; the authoritative order row lives in the shared
// database and is re-read on handling.
type Event struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
