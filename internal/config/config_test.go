package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires BOT_TOKEN", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "123:abc", cfg.BotToken)
		assert.Equal(t, 1500*time.Millisecond, cfg.Shop.ReplyDelay)
		assert.Equal(t, 2*time.Second, cfg.Shop.OrderProcessingDelay)
		assert.Equal(t, "demo@lugmety.com", cfg.Shop.DemoEmail)
		assert.Equal(t, 20, cfg.RateLimitPerMinute)
		assert.Equal(t, 24*time.Hour, cfg.Shop.SessionTTL)
	})

	t.Run("overrides and admin ids", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")
		t.Setenv("REPLY_DELAY", "10ms")
		t.Setenv("ADMIN_IDS", "7,42")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10*time.Millisecond, cfg.Shop.ReplyDelay)
		assert.True(t, cfg.IsAdmin(42))
		assert.False(t, cfg.IsAdmin(8))
	})
}

func TestLoadShopWithoutToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DEMO_PASSWORD", "secret")

	shop, err := LoadShop()
	require.NoError(t, err)
	assert.Equal(t, "secret", shop.DemoPassword)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		s := Shop{LogLevel: in}
		assert.Equal(t, want, s.SlogLevel(), in)
	}
}
