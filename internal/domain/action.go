package domain

// Action is a courier action code delivered through the messaging-channel
// callback (inline keyboard button) or the admin UI.
type Action string

const (
	// ActionToDelivery - courier confirmed pickup, order is on its way.
	ActionToDelivery Action = "to_delivery"
	// ActionToDelivered - courier confirmed drop-off.
	ActionToDelivered Action = "to_delivered"
	// ActionToPaid - payment confirmed; delivery status is untouched.
	ActionToPaid Action = "to_paid"
)

var allowedActions = [...]Action{
	ActionToDelivery, ActionToDelivered, ActionToPaid,
}

// Valid checks if the Action is one of the known action codes.
func (a Action) Valid() bool {
	for _, v := range allowedActions {
		if a == v {
			return true
		}
	}
	return false
}

// TargetStatus returns the delivery status the action moves an order to.
// ok is false for actions that do not touch delivery status (to_paid).
func (a Action) TargetStatus() (OrderStatus, bool) {
	switch a {
	case ActionToDelivery:
		return OrderDelivering, true
	case ActionToDelivered:
		return OrderDelivered, true
	default:
		return "", false
	}
}
