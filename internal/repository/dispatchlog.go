package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"market-dispatch/internal/domain"
)

// DispatchLogRepo appends matching attempts to the audit log. Rows are
// write-once; nothing in this subsystem reads them back.
type DispatchLogRepo struct{ db *pgxpool.Pool }

// NewDispatchLogRepo creates a new DispatchLogRepo.
func NewDispatchLogRepo(db *pgxpool.Pool) *DispatchLogRepo { return &DispatchLogRepo{db: db} }

// Record inserts one attempt row and returns it with the generated id.
func (r *DispatchLogRepo) Record(ctx context.Context, orderID string, courierID int64, score float64) (*domain.DispatchLog, error) {
	entry := domain.DispatchLog{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		CourierID: courierID,
		Status:    domain.DispatchLogPending,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO dispatch_log (id, order_id, courier_id, status, score, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, entry.ID, entry.OrderID, entry.CourierID, entry.Status, entry.Score, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record dispatch attempt for order %q: %w", orderID, err)
	}
	return &entry, nil
}

// CountByOrder returns how many attempts were logged for an order.
// Used only by tests and ops tooling; the dispatch path never reads the log.
func (r *DispatchLogRepo) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM dispatch_log WHERE order_id = $1`, orderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dispatch attempts for order %q: %w", orderID, err)
	}
	return n, nil
}
