package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Shop holds the settings shared by every front end.
type Shop struct {
	// Simulated latencies
	ReplyDelay           time.Duration `env:"REPLY_DELAY" envDefault:"1500ms"`
	OrderProcessingDelay time.Duration `env:"ORDER_PROCESSING_DELAY" envDefault:"2s"`
	AuthDelay            time.Duration `env:"AUTH_DELAY" envDefault:"1500ms"`

	// Demo account
	DemoEmail    string `env:"DEMO_EMAIL" envDefault:"demo@lugmety.com"`
	DemoPassword string `env:"DEMO_PASSWORD" envDefault:"demo123"`

	// Sessions
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Config struct {
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`

	Shop Shop

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Bot behavior
	RateLimitPerMinute int  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Telegram logging
	LogTelegramChatID   int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError       int   `env:"LOG_TOPIC_ERROR"`
	LogTopicOrderPlaced int   `env:"LOG_TOPIC_ORDER_PLACED"`
	LogTopicConflict    int   `env:"LOG_TOPIC_VENDOR_CONFLICT"`
	LogTopicSignUp      int   `env:"LOG_TOPIC_SIGNUP"`
}

// Load reads the bot configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadShop reads only the shop settings, for front ends that don't talk to Telegram.
func LoadShop() (*Shop, error) {
	cfg := &Shop{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse shop config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// SlogLevel maps LOG_LEVEL onto a slog level. Unknown values fall back to info.
func (s *Shop) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
