package config

import "time"

const defaultPort = 8080

const defaultLogger = "slog"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "market_db",
}

var defaultKafka = Kafka{
	Brokers: nil,
	Topic:   "orders",
	GroupID: "dispatch-worker",
}

var defaultTelegram = Telegram{
	APIBaseURL:  "https://api.telegram.org",
	SendTimeout: 3 * time.Second,
}

var defaultWebhook = Webhook{
	RatePerMinute: 30,
	Burst:         10,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultLogger returns the default logger backend.
func DefaultLogger() string {
	return defaultLogger
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default order-events consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultTelegram returns the default messaging-channel settings.
func DefaultTelegram() Telegram {
	return defaultTelegram
}

// DefaultWebhook returns the default webhook endpoint settings.
func DefaultWebhook() Webhook {
	return defaultWebhook
}
