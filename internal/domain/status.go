package domain

import "regexp"

type (
	// OrderStatus represents the delivery status of an order.
	OrderStatus string
	// PaymentStatus represents the payment state of an order, parallel to
	// and independent of the delivery status (cash on delivery is legal).
	PaymentStatus string
	// CourierStatus represents the availability of a courier.
	CourierStatus string
	// CourierTransportType represents the transport type of a courier.
	CourierTransportType string
)

// List of possible order statuses
const (
	OrderCreated    OrderStatus = "created"
	OrderAssigned   OrderStatus = "assigned"
	OrderPickedUp   OrderStatus = "picked_up"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// List of possible payment statuses
const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// List of possible courier statuses
const (
	CourierOnline  CourierStatus = "online"
	CourierOffline CourierStatus = "offline"
)

// List of possible courier transport types
const (
	TransportTypeFoot    CourierTransportType = "on_foot"
	TransportTypeScooter CourierTransportType = "scooter"
	TransportTypeCar     CourierTransportType = "car"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderCreated, OrderAssigned, OrderPickedUp, OrderDelivering,
	OrderDelivered, OrderCompleted, OrderCancelled,
}

var allowedCourierStatuses = [...]CourierStatus{
	CourierOnline, CourierOffline,
}

var allowedTransportTypes = [...]CourierTransportType{
	TransportTypeFoot, TransportTypeScooter, TransportTypeCar,
}

// legalTransitions is the only source of truth for lifecycle moves.
// cancelled is reachable from every pre-delivered state; delivered and
// completed cannot be cancelled anymore.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderCreated:    {OrderAssigned, OrderCancelled},
	OrderAssigned:   {OrderPickedUp, OrderDelivering, OrderCancelled},
	OrderPickedUp:   {OrderDelivering, OrderCancelled},
	OrderDelivering: {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderCompleted},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, v := range legalTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further delivery-status transitions exist.
func (s OrderStatus) Terminal() bool {
	return len(legalTransitions[s]) == 0
}

// Valid checks if the PaymentStatus is valid
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Valid checks if the CourierStatus is valid
func (s CourierStatus) Valid() bool {
	for _, v := range allowedCourierStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the CourierTransportType is valid
func (t CourierTransportType) Valid() bool {
	for _, v := range allowedTransportTypes {
		if t == v {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{11,12}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
