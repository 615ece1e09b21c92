package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BotSessionRepo persists the per-chat conversation state of the
// messaging-channel bot (chat-linking flow).
type BotSessionRepo struct{ db *pgxpool.Pool }

// NewBotSessionRepo creates a new BotSessionRepo.
func NewBotSessionRepo(db *pgxpool.Pool) *BotSessionRepo { return &BotSessionRepo{db: db} }

// Get returns the stored state for a chat; empty string when the chat has
// no session yet.
func (r *BotSessionRepo) Get(ctx context.Context, chatID int64) (string, error) {
	var state string
	err := r.db.QueryRow(ctx,
		`SELECT state FROM bot_sessions WHERE chat_id = $1`, chatID).Scan(&state)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get bot session %d: %w", chatID, err)
	}
	return state, nil
}

// Put stores the state for a chat, creating the session row on first use.
func (r *BotSessionRepo) Put(ctx context.Context, chatID int64, state string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO bot_sessions (chat_id, state, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (chat_id) DO UPDATE SET state = $2, updated_at = now()
    `, chatID, state)
	if err != nil {
		return fmt.Errorf("put bot session %d: %w", chatID, err)
	}
	return nil
}
