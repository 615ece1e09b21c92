package domain

import "time"

// Order is the dispatch-relevant view of a marketplace order. The id is
// assigned by the storefront at checkout and opaque to this subsystem.
type Order struct {
	ID            string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	// CourierID is nil until the order is claimed by the assignment
	// transaction; non-nil implies Status >= assigned.
	CourierID *int64
	// Lat/Lng are the delivery destination. Orders without coordinates
	// cannot be dispatched.
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dispatchable reports whether the order can enter candidate scoring:
// still unassigned and carrying a destination coordinate.
func (o *Order) Dispatchable() bool {
	return o.CourierID == nil && o.Lat != nil && o.Lng != nil
}
