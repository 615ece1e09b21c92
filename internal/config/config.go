package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx-compatible connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-events consumer settings. Empty brokers disable the
// consumer (the worker refuses to start, the HTTP service runs without it).
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Telegram stores messaging-channel client settings. An empty token
// disables outbound notifications entirely.
type Telegram struct {
	Token       string
	APIBaseURL  string
	SendTimeout time.Duration
}

// Webhook stores settings of the public callback endpoint.
type Webhook struct {
	// RatePerMinute limits callback bursts per chat; 0 disables limiting.
	RatePerMinute int
	Burst         int
}

// Config stores service settings.
type Config struct {
	Port      int
	Logger    string // "slog" or "zap"
	PprofAddr string // empty disables the debug server
	PprofUser string // with PprofPass opens the debug server beyond loopback
	PprofPass string
	DB        DB
	Kafka     Kafka
	Telegram  Telegram
	Webhook   Webhook
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:     DefaultPort(),
		Logger:   DefaultLogger(),
		DB:       DefaultDB(),
		Kafka:    DefaultKafka(),
		Telegram: DefaultTelegram(),
		Webhook:  DefaultWebhook(),
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("LOGGER"); v != "" {
		cfg.Logger = v
	}
	cfg.PprofAddr = os.Getenv("PPROF_ADDR")
	cfg.PprofUser = os.Getenv("PPROF_USER")
	cfg.PprofPass = os.Getenv("PPROF_PASS")

	overrideString(&cfg.DB.Host, "POSTGRES_HOST")
	overrideString(&cfg.DB.Port, "POSTGRES_PORT")
	overrideString(&cfg.DB.User, "POSTGRES_USER")
	overrideString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	overrideString(&cfg.DB.Name, "POSTGRES_DB")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitNonEmpty(v)
	}
	overrideString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	overrideString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	overrideString(&cfg.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	overrideString(&cfg.Telegram.APIBaseURL, "TELEGRAM_API_URL")
	if v := os.Getenv("TELEGRAM_SEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Telegram.SendTimeout = d
		}
	}

	if v := os.Getenv("WEBHOOK_RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Webhook.RatePerMinute = n
		}
	}
	if v := os.Getenv("WEBHOOK_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Webhook.Burst = n
		}
	}

	// Load может вызываться повторно (тестовые контейнеры), флаг
	// регистрируем один раз
	if pflag.Lookup("port") == nil {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	pflag.Parse()
	if f := pflag.Lookup("port"); f != nil && f.Changed {
		if p, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.Port = p
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Logger != "slog" && cfg.Logger != "zap" {
		return nil, fmt.Errorf("invalid logger backend: %q", cfg.Logger)
	}
	return cfg, nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
