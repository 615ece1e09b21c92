package domain

// Courier represents a delivery courier profile.
type Courier struct {
	ID     int64
	Name   string
	Phone  string
	Status CourierStatus
	// Verified gates dispatch eligibility; unverified couriers are never
	// candidates regardless of status.
	Verified      bool
	TransportType CourierTransportType
	// ChatID is the external messaging-channel handle for notifications.
	// nil means the courier never linked a chat; such couriers are
	// dispatchable but silently skipped by the notifier.
	ChatID *int64
	// CurrentLat/CurrentLng are the last position the courier reported.
	// nil until the first location message arrives.
	CurrentLat *float64
	CurrentLng *float64
}

// HasPosition reports whether the courier ever reported a location.
func (c *Courier) HasPosition() bool {
	return c.CurrentLat != nil && c.CurrentLng != nil
}

// PartialCourierUpdate carries optional fields to update a courier.
// A nil field means “do not change” that attribute.
type PartialCourierUpdate struct {
	ID            int64
	Name          *string
	Phone         *string
	Status        *CourierStatus
	TransportType *CourierTransportType
	Verified      *bool
}
