package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	API struct {
		Port     string
		BasePath string
	}
	Data struct {
		Backend  string // "workbook" or "postgres"
		Workbook string // spreadsheet path for the workbook backend
		DSN      string // connection string for the postgres backend
	}
	Telegram struct {
		BotToken string
		ChatID   int64
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		Recipient  string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a
// Config. A .env file next to the binary is honored when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Data.Backend = os.Getenv("DATA_BACKEND")
	cfg.Data.Workbook = os.Getenv("DATA_WORKBOOK")
	cfg.Data.DSN = os.Getenv("DB_DSN")

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.Telegram.ChatID = id
	}

	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.Recipient = os.Getenv("EMAIL_RECIPIENT")

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate paired settings: configuring half a transport is a
	// mistake we refuse to guess around.
	if (cfg.Telegram.BotToken == "") != (cfg.Telegram.ChatID == 0) {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	if cfg.Email.Recipient != "" && (cfg.Email.SMTPServer == "" || cfg.Email.Username == "") {
		return Config{}, fmt.Errorf("EMAIL_RECIPIENT requires EMAIL_SMTP_SERVER and EMAIL_USERNAME")
	}
	if cfg.Data.Backend == "postgres" && cfg.Data.DSN == "" {
		return Config{}, fmt.Errorf("DATA_BACKEND=postgres requires DB_DSN")
	}

	// Apply defaults.
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Data.Backend == "" {
		cfg.Data.Backend = "workbook"
	}
	if cfg.Data.Backend != "workbook" && cfg.Data.Backend != "postgres" {
		return Config{}, fmt.Errorf("unknown DATA_BACKEND %q", cfg.Data.Backend)
	}
	if cfg.Data.Workbook == "" {
		cfg.Data.Workbook = "metering_mux.xlsx"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "metering_alerts"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// TelegramEnabled reports whether the Telegram transport is configured.
func (c Config) TelegramEnabled() bool { return c.Telegram.BotToken != "" }

// EmailEnabled reports whether the email transport is configured.
func (c Config) EmailEnabled() bool { return c.Email.Recipient != "" }

// KafkaEnabled reports whether alert event publication is configured.
func (c Config) KafkaEnabled() bool { return c.Kafka.Broker != "" }
