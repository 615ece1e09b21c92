package botsession

import (
	"context"

	"market-dispatch/internal/domain"
)

// sessionStore persists per-chat conversation state between updates.
type sessionStore interface {
	Get(ctx context.Context, chatID int64) (string, error)
	Put(ctx context.Context, chatID int64, state string) error
}

// courierDirectory is the slice of courier storage the chat flow needs.
type courierDirectory interface {
	GetByChatID(ctx context.Context, chatID int64) (*domain.Courier, error)
	LinkChat(ctx context.Context, phone string, chatID int64) (*domain.Courier, error)
	SetStatusByChatID(ctx context.Context, chatID int64, status domain.CourierStatus) (bool, error)
	SetPositionByChatID(ctx context.Context, chatID int64, lat, lng float64) (bool, error)
}
