package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Limiter is a fixed one-minute window counter per chat.
type Limiter struct {
	perMinute int
	now       func() time.Time

	mu          sync.Mutex
	buckets     map[int64]*bucket
	lastCleanup time.Time
}

type bucket struct {
	count     int
	resetTime time.Time
}

func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		perMinute:   perMinute,
		now:         time.Now,
		buckets:     make(map[int64]*bucket),
		lastCleanup: time.Now(),
	}
}

// Allow counts one request for chatID. It reports false once the window is full.
// A non-positive limit disables limiting.
func (l *Limiter) Allow(chatID int64) bool {
	if l.perMinute <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > 5*time.Minute {
		for id, b := range l.buckets {
			if now.After(b.resetTime) {
				delete(l.buckets, id)
			}
		}
		l.lastCleanup = now
	}

	b, ok := l.buckets[chatID]
	if !ok || now.After(b.resetTime) {
		b = &bucket{resetTime: now.Add(time.Minute)}
		l.buckets[chatID] = b
	}
	if b.count >= l.perMinute {
		return false
	}
	b.count++
	return true
}

// RateLimit returns middleware that enforces per-minute rate limits on messages.
func RateLimit(l *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !l.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID, "limit", l.perMinute)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many messages. Please wait a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
