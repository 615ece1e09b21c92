package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"market-dispatch/internal/domain"
)

// SettingsRepo reads the store_settings singleton row. The settings are
// owned by the admin back-office; this subsystem only consumes them.
type SettingsRepo struct{ db *pgxpool.Pool }

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo { return &SettingsRepo{db: db} }

// Get reads the current dispatch settings. A missing row (fresh install)
// means dispatch is disabled and nobody is notified, not an error.
func (r *SettingsRepo) Get(ctx context.Context) (domain.DispatchSettings, error) {
	var (
		enabled bool
		raw     string
	)
	err := r.db.QueryRow(ctx, `
        SELECT auto_dispatch_enabled, telegram_admin_ids
        FROM store_settings
        WHERE id = 1
    `).Scan(&enabled, &raw)
	if err != nil {
		if IsNotFound(err) {
			return domain.DispatchSettings{}, nil
		}
		return domain.DispatchSettings{}, fmt.Errorf("get store settings: %w", err)
	}
	return domain.DispatchSettings{
		AutoDispatchEnabled: enabled,
		AdminChatIDs:        domain.ParseAdminChatIDs(raw),
	}, nil
}
