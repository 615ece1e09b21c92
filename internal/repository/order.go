package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"market-dispatch/internal/domain"
)

// OrderRepo represents the dispatch-side order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// GetByID - returns order by its ID, nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `
        SELECT id, status, payment_status, courier_id, lat, lng, created_at, updated_at
        FROM orders
        WHERE id = $1
    `, id).Scan(&o.ID, &o.Status, &o.PaymentStatus, &o.CourierID, &o.Lat, &o.Lng, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return &o, nil
}

// Assign atomically claims an order for a courier. The WHERE clause on the
// null courier_id is the only double-assignment guard: zero rows affected
// means another process already claimed the order, which the caller treats
// as a benign no-op.
func (r *OrderRepo) Assign(ctx context.Context, orderID string, courierID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET courier_id = $2, status = $3, updated_at = now()
        WHERE id = $1 AND courier_id IS NULL
    `, orderID, courierID, string(domain.OrderAssigned))
	if err != nil {
		return false, fmt.Errorf("assign order %q to courier %d: %w", orderID, courierID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateStatus moves an order from exactly the given status to the next
// one. The status precondition in the WHERE clause makes concurrent
// duplicate callbacks settle to a single effective write.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `, orderID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("order %q status %s -> %s: %w", orderID, from, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// MarkPaid flips payment_status to paid once; repeated confirmations are
// no-ops. Delivery status is deliberately untouched.
func (r *OrderRepo) MarkPaid(ctx context.Context, orderID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET payment_status = $2, updated_at = now()
        WHERE id = $1 AND payment_status = $3
    `, orderID, string(domain.PaymentPaid), string(domain.PaymentPending))
	if err != nil {
		return false, fmt.Errorf("mark order %q paid: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ActiveByCourier returns the order the courier is currently working on:
// assigned to them and not yet in a terminal or delivered state. Callback
// buttons carry bare action codes, so the webhook resolves the order from
// the courier's single active assignment.
func (r *OrderRepo) ActiveByCourier(ctx context.Context, courierID int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `
        SELECT id, status, payment_status, courier_id, lat, lng, created_at, updated_at
        FROM orders
        WHERE courier_id = $1 AND status IN ('assigned', 'picked_up', 'delivering')
        ORDER BY updated_at DESC
        LIMIT 1
    `, courierID).Scan(&o.ID, &o.Status, &o.PaymentStatus, &o.CourierID, &o.Lat, &o.Lng, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("active order for courier %d: %w", courierID, err)
	}
	return &o, nil
}

// Cancel moves a pre-delivered order to cancelled and reports the courier
// that was assigned, if any, so the caller can release it. Orders already
// delivered, completed or cancelled are left untouched.
func (r *OrderRepo) Cancel(ctx context.Context, orderID string) (*int64, bool, error) {
	var courierID *int64
	err := r.db.QueryRow(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status IN ('created', 'assigned', 'picked_up', 'delivering')
        RETURNING courier_id
    `, orderID, string(domain.OrderCancelled)).Scan(&courierID)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cancel order %q: %w", orderID, err)
	}
	return courierID, true, nil
}
