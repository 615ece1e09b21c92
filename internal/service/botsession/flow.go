package botsession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
	"market-dispatch/internal/logx"
)

// Conversation states stored per chat. An empty state means the chat has
// never talked to the bot.
const (
	StateAwaitingContact = "awaiting_contact"
	StateLinked          = "linked"
)

// Canned replies. User-level misses come back as reply text, not errors,
// so the webhook stays a 200 for everything the storage layer survived.
const (
	replyAskContact     = "Отправьте свой контакт, чтобы привязать чат к профилю курьера."
	replyUnknownPhone   = "Курьер с таким номером не найден. Обратитесь к администратору."
	replyChatTaken      = "Этот номер уже привязан к другому чату."
	replyLinked         = "Чат привязан. Команды: /online, /offline. Отправляйте геопозицию для назначений."
	replyAlreadyLinked  = "Чат уже привязан к профилю %s."
	replyNotLinked      = "Чат не привязан. Отправьте /start."
	replyOnline         = "Вы на линии. Ожидайте заказы."
	replyOffline        = "Вы сняты с линии."
	replyLocationSaved  = "Позиция обновлена."
	replyBadPhoneFormat = "Не удалось прочитать номер из контакта."
)

// Flow drives the chat-linking conversation and the courier's channel-side
// availability and position updates.
type Flow struct {
	sessions sessionStore
	couriers courierDirectory
	logger   logx.Logger
	timeout  time.Duration
}

// NewFlow creates a Flow.
func NewFlow(sessions sessionStore, couriers courierDirectory, logger logx.Logger, timeout time.Duration) *Flow {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Flow{sessions: sessions, couriers: couriers, logger: logger, timeout: timeout}
}

func (f *Flow) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.timeout)
}

// Start handles /start: an already linked chat gets a reminder, a fresh
// one is asked for a contact.
func (f *Flow) Start(ctx context.Context, chatID int64) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	c, err := f.couriers.GetByChatID(ctx, chatID)
	if err != nil {
		return "", err
	}
	if c != nil {
		return fmt.Sprintf(replyAlreadyLinked, c.Name), nil
	}

	if err := f.sessions.Put(ctx, chatID, StateAwaitingContact); err != nil {
		return "", err
	}
	return replyAskContact, nil
}

// Contact handles a shared contact card: validates the phone and binds the
// chat to the matching courier profile.
func (f *Flow) Contact(ctx context.Context, chatID int64, phone string) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	state, err := f.sessions.Get(ctx, chatID)
	if err != nil {
		return "", err
	}
	if state != StateAwaitingContact {
		return replyNotLinked, nil
	}

	phone = normalizePhone(phone)
	if !domain.ValidatePhone(phone) {
		return replyBadPhoneFormat, nil
	}

	c, err := f.couriers.LinkChat(ctx, phone, chatID)
	switch {
	case errors.Is(err, apperr.NotFound):
		return replyUnknownPhone, nil
	case errors.Is(err, apperr.Conflict):
		return replyChatTaken, nil
	case err != nil:
		return "", err
	}

	if err := f.sessions.Put(ctx, chatID, StateLinked); err != nil {
		// Link already committed; a stale session state only re-prompts.
		f.logger.Warn("session state write failed after link",
			logx.Int64("chat_id", chatID),
			logx.Any("err", err),
		)
	}
	f.logger.Info("chat linked",
		logx.Int64("chat_id", chatID),
		logx.Int64("courier_id", c.ID),
	)
	return replyLinked, nil
}

// SetAvailability handles /online and /offline.
func (f *Flow) SetAvailability(ctx context.Context, chatID int64, status domain.CourierStatus) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	ok, err := f.couriers.SetStatusByChatID(ctx, chatID, status)
	if err != nil {
		return "", err
	}
	if !ok {
		return replyNotLinked, nil
	}
	if status == domain.CourierOnline {
		return replyOnline, nil
	}
	return replyOffline, nil
}

// Location handles a shared geoposition message.
func (f *Flow) Location(ctx context.Context, chatID int64, lat, lng float64) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	ok, err := f.couriers.SetPositionByChatID(ctx, chatID, lat, lng)
	if err != nil {
		return "", err
	}
	if !ok {
		return replyNotLinked, nil
	}
	return replyLocationSaved, nil
}

// normalizePhone coerces contact-card phone formats to the stored shape:
// digits with a leading plus.
func normalizePhone(s string) string {
	out := make([]byte, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return "+" + string(out)
}
