package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"market-dispatch/internal/config"
)

// Client is a thin messaging-channel sender. It knows nothing about orders
// or couriers; callers hand it a chat id, text and an optional keyboard.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a messaging-channel client. Returns nil when no bot
// token is configured; the notifier treats a nil client as "channel off".
func NewClient(cfg config.Telegram) *Client {
	if cfg.Token == "" {
		return nil
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.SendTimeout},
		baseURL: cfg.APIBaseURL,
		token:   cfg.Token,
	}
}

type sendMessageRequest struct {
	ChatID      int64           `json:"chat_id"`
	Text        string          `json:"text"`
	ParseMode   string          `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboard `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers one message. The configured client timeout bounds
// the call so a slow channel can never stall the assignment path.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboard) error {
	if c == nil {
		return nil
	}
	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

// AnswerCallback acknowledges an inline-button press so the channel stops
// showing the loading spinner. Best-effort like every other send.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if c == nil {
		return nil
	}
	return c.call(ctx, "answerCallbackQuery", answerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: encode: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s: api error: %s", method, apiResp.Description)
	}
	return nil
}
