package telegram

// Wire types for the subset of the Bot API this service touches. Parsed
// defensively at the boundary; everything past the webhook handler works
// with domain types.

// Update is one inbound webhook payload.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is an inbound chat message (command, contact share or location).
type Message struct {
	MessageID int64     `json:"message_id"`
	Chat      Chat      `json:"chat"`
	Text      string    `json:"text,omitempty"`
	Contact   *Contact  `json:"contact,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

// Chat identifies the conversation an update belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// Contact is a shared phone number (chat-linking flow).
type Contact struct {
	PhoneNumber string `json:"phone_number"`
}

// Location is a shared position report.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CallbackQuery is an inline-keyboard button press routed back by the
// messaging channel. Data carries the action code.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    Chat     `json:"from"`
	Data    string   `json:"data"`
	Message *Message `json:"message,omitempty"`
}

// InlineButton is one keyboard button; CallbackData is the action code the
// channel echoes back on press.
type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// InlineKeyboard is rows of buttons attached to an outbound message.
type InlineKeyboard struct {
	Buttons [][]InlineButton `json:"inline_keyboard"`
}

// OrderActionsKeyboard builds the courier action menu for an order.
func OrderActionsKeyboard(orderID string) *InlineKeyboard {
	return &InlineKeyboard{Buttons: [][]InlineButton{
		{
			{Text: "Забрал заказ", CallbackData: "to_delivery"},
			{Text: "Доставил", CallbackData: "to_delivered"},
		},
		{
			{Text: "Оплачено", CallbackData: "to_paid"},
			{Text: "Детали", CallbackData: "view_order:" + orderID},
		},
	}}
}
