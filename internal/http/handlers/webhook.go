package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
	"market-dispatch/internal/gateway/telegram"
	"market-dispatch/internal/http/middleware/ratelimit"
	"market-dispatch/internal/logx"
)

type chatFlow interface {
	Start(ctx context.Context, chatID int64) (string, error)
	Contact(ctx context.Context, chatID int64, phone string) (string, error)
	SetAvailability(ctx context.Context, chatID int64, status domain.CourierStatus) (string, error)
	Location(ctx context.Context, chatID int64, lat, lng float64) (string, error)
}

type courierActions interface {
	ApplyCourierAction(ctx context.Context, courierID int64, action domain.Action) (*domain.Order, error)
}

type chatDirectory interface {
	GetByChatID(ctx context.Context, chatID int64) (*domain.Courier, error)
}

type messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboard) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// WebhookHandler receives messaging-channel updates: courier commands,
// contact shares, location reports and inline-button presses. It always
// answers 200 so the channel does not redeliver updates the service chose
// to drop; only a malformed body is a client error.
type WebhookHandler struct {
	flow        chatFlow
	actions     courierActions
	couriers    chatDirectory
	orders      orderReader
	messenger   messenger
	limiter     ratelimit.Limiter
	rateLimited prometheus.Counter
	logger      logx.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(
	logger logx.Logger,
	flow chatFlow,
	actions courierActions,
	couriers chatDirectory,
	orders orderReader,
	m messenger,
	limiter ratelimit.Limiter,
	rateLimited prometheus.Counter,
) *WebhookHandler {
	if limiter == nil {
		limiter = ratelimit.NopLimiter{}
	}
	return &WebhookHandler{
		flow:        flow,
		actions:     actions,
		couriers:    couriers,
		orders:      orders,
		messenger:   m,
		limiter:     limiter,
		rateLimited: rateLimited,
		logger:      logger,
	}
}

// Handle handles POST /webhook/telegram.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// Lenient decode: channel payloads carry plenty of fields this
	// service does not model.
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid json")
		return
	}

	chatID, ok := updateChatID(&upd)
	if !ok {
		// Update kinds this service does not subscribe to.
		w.WriteHeader(http.StatusOK)
		return
	}

	if !h.limiter.Allow("chat:" + strconv.FormatInt(chatID, 10)) {
		if h.rateLimited != nil {
			h.rateLimited.Inc()
		}
		h.logger.Warn("chat rate limit exceeded", logx.Int64("chat_id", chatID))
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case upd.CallbackQuery != nil:
		h.handleCallback(r.Context(), chatID, upd.CallbackQuery)
	case upd.Message != nil:
		h.handleMessage(r.Context(), chatID, upd.Message)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handleMessage(ctx context.Context, chatID int64, msg *telegram.Message) {
	var (
		reply string
		err   error
	)

	switch {
	case msg.Contact != nil:
		reply, err = h.flow.Contact(ctx, chatID, msg.Contact.PhoneNumber)
	case msg.Location != nil:
		reply, err = h.flow.Location(ctx, chatID, msg.Location.Latitude, msg.Location.Longitude)
	default:
		switch command(msg.Text) {
		case "/start":
			reply, err = h.flow.Start(ctx, chatID)
		case "/online":
			reply, err = h.flow.SetAvailability(ctx, chatID, domain.CourierOnline)
		case "/offline":
			reply, err = h.flow.SetAvailability(ctx, chatID, domain.CourierOffline)
		default:
			return
		}
	}

	if err != nil {
		h.logger.Error("webhook message handling failed",
			logx.Int64("chat_id", chatID),
			logx.Any("err", err),
		)
		return
	}
	h.reply(ctx, chatID, reply)
}

func (h *WebhookHandler) handleCallback(ctx context.Context, chatID int64, cb *telegram.CallbackQuery) {
	answer := h.dispatchCallback(ctx, chatID, cb.Data)
	if err := h.messenger.AnswerCallback(ctx, cb.ID, answer); err != nil {
		h.logger.Warn("callback answer failed",
			logx.Int64("chat_id", chatID),
			logx.Any("err", err),
		)
	}
}

func (h *WebhookHandler) dispatchCallback(ctx context.Context, chatID int64, data string) string {
	if orderID, ok := strings.CutPrefix(data, "view_order:"); ok {
		return h.viewOrder(ctx, chatID, orderID)
	}

	action := domain.Action(data)
	if !action.Valid() {
		return "Неизвестное действие"
	}

	c, err := h.couriers.GetByChatID(ctx, chatID)
	if err != nil {
		h.logger.Error("courier lookup failed",
			logx.Int64("chat_id", chatID),
			logx.Any("err", err),
		)
		return "Попробуйте позже"
	}
	if c == nil {
		return "Чат не привязан. Отправьте /start."
	}

	o, err := h.actions.ApplyCourierAction(ctx, c.ID, action)
	switch {
	case err == nil:
		return fmt.Sprintf("Заказ %s: %s", o.ID, o.Status)
	case errors.Is(err, apperr.NotFound):
		return "Нет активного заказа"
	case errors.Is(err, apperr.Conflict):
		return "Действие недоступно в текущем статусе"
	default:
		h.logger.Error("courier action failed",
			logx.Int64("chat_id", chatID),
			logx.String("action", data),
			logx.Any("err", err),
		)
		return "Попробуйте позже"
	}
}

func (h *WebhookHandler) viewOrder(ctx context.Context, chatID int64, orderID string) string {
	o, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		h.logger.Error("order lookup failed",
			logx.String("order_id", orderID),
			logx.Any("err", err),
		)
		return "Попробуйте позже"
	}
	if o == nil {
		return "Заказ не найден"
	}

	text := fmt.Sprintf("Заказ %s\nСтатус: %s\nОплата: %s", o.ID, o.Status, o.PaymentStatus)
	h.reply(ctx, chatID, text)
	return ""
}

func (h *WebhookHandler) reply(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}
	if err := h.messenger.SendMessage(ctx, chatID, text, nil); err != nil {
		h.logger.Warn("webhook reply failed",
			logx.Int64("chat_id", chatID),
			logx.Any("err", err),
		)
	}
}

func command(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, ' '); i > 0 {
		text = text[:i]
	}
	// strip the bot mention suffix: /online@market_dispatch_bot
	if i := strings.IndexByte(text, '@'); i > 0 {
		text = text[:i]
	}
	return text
}

func updateChatID(upd *telegram.Update) (int64, bool) {
	switch {
	case upd.CallbackQuery != nil:
		return upd.CallbackQuery.From.ID, true
	case upd.Message != nil:
		return upd.Message.Chat.ID, true
	default:
		return 0, false
	}
}
