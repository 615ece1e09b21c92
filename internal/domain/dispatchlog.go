package domain

import "time"

// DispatchLogStatus of every row written by the matcher. Rows are never
// updated after insert; the log is a write-once audit trail, not a state
// the subsystem reads back.
const DispatchLogPending = "pending"

// DispatchLog is one matching attempt: the candidate the matcher picked
// and the distance score it won with.
type DispatchLog struct {
	ID        string
	OrderID   string
	CourierID int64
	Status    string
	Score     float64
	CreatedAt time.Time
}
