package notify

import (
	"context"

	"market-dispatch/internal/domain"
	"market-dispatch/internal/gateway/telegram"
)

// messenger abstracts the outbound messaging channel.
type messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboard) error
}

// courierDirectory resolves courier ids to profiles (for the chat handle).
type courierDirectory interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
}

type counter interface {
	Inc()
}
