package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

const courierColumns = `id, name, phone, status, is_verified, transport_type, chat_id, current_lat, current_lng`

func scanCourier(row interface{ Scan(...any) error }) (*domain.Courier, error) {
	var c domain.Courier
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Status, &c.Verified,
		&c.TransportType, &c.ChatID, &c.CurrentLat, &c.CurrentLng)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get - returns courier by its ID.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM couriers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	return c, nil
}

// GetByChatID - returns courier linked to the given messaging-channel chat.
func (r *CourierRepo) GetByChatID(ctx context.Context, chatID int64) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM couriers WHERE chat_id=$1`, chatID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier by chat %d: %w", chatID, err)
	}
	return c, nil
}

// Eligible returns every courier available for assignment: online and
// verified. No geographic filtering here; scoring happens in the matcher.
func (r *CourierRepo) Eligible(ctx context.Context) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+courierColumns+`
        FROM couriers
        WHERE status = $1 AND is_verified = true
        ORDER BY id
    `, string(domain.CourierOnline))
	if err != nil {
		return nil, fmt.Errorf("eligible couriers: %w", err)
	}
	defer rows.Close()

	var out []domain.Courier
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan eligible courier: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// List returns couriers ordered by id. If limit/offset are nil, returns the full list.
func (r *CourierRepo) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	q := `SELECT ` + courierColumns + ` FROM couriers ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	out := make([]domain.Courier, 0, capacity)
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create inserts a courier profile and returns the new id.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO couriers (name, phone, status, is_verified, transport_type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, c.Name, c.Phone, string(c.Status), c.Verified, string(c.TransportType)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create courier: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a courier and returns true if a row was affected.
func (r *CourierRepo) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET
            name           = COALESCE($2, name),
            phone          = COALESCE($3, phone),
            status         = COALESCE($4, status),
            transport_type = COALESCE($5, transport_type),
            is_verified    = COALESCE($6, is_verified),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.Status, u.TransportType, u.Verified)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.Conflict
		}
		return false, fmt.Errorf("update courier %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetStatusByChatID flips availability for the courier bound to the chat.
// Returns false when no courier is linked to that chat.
func (r *CourierRepo) SetStatusByChatID(ctx context.Context, chatID int64, status domain.CourierStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET status = $2, updated_at = now()
        WHERE chat_id = $1
    `, chatID, string(status))
	if err != nil {
		return false, fmt.Errorf("set status by chat %d: %w", chatID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetPositionByChatID stores the last reported location for the courier
// bound to the chat. No freshness bookkeeping: the position simply stays
// "last known" until the next report.
func (r *CourierRepo) SetPositionByChatID(ctx context.Context, chatID int64, lat, lng float64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET current_lat = $2, current_lng = $3, updated_at = now()
        WHERE chat_id = $1
    `, chatID, lat, lng)
	if err != nil {
		return false, fmt.Errorf("set position by chat %d: %w", chatID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// LinkChat binds a messaging-channel chat to the courier registered with
// the given phone. Returns the linked courier, or NotFound when no profile
// matches the phone, Conflict when the chat is already bound elsewhere.
func (r *CourierRepo) LinkChat(ctx context.Context, phone string, chatID int64) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx, `
        UPDATE couriers
        SET chat_id = $2, updated_at = now()
        WHERE phone = $1
        RETURNING `+courierColumns+`
    `, phone, chatID))
	if err != nil {
		if IsNotFound(err) {
			return nil, apperr.NotFound
		}
		if IsDuplicate(err) {
			return nil, apperr.Conflict
		}
		return nil, fmt.Errorf("link chat %d to phone %q: %w", chatID, phone, err)
	}
	return c, nil
}

// SetStatus updates courier availability by id (admin surface).
func (r *CourierRepo) SetStatus(ctx context.Context, id int64, status domain.CourierStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(status))
	if err != nil {
		return false, fmt.Errorf("set courier %d status: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
