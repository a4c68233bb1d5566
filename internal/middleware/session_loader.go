package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/service"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the shopping session from context.
func GetSession(ctx context.Context) *service.Session {
	s, ok := ctx.Value(SessionKey).(*service.Session)
	if !ok {
		return nil
	}
	return s
}

// WithSession stores a session in ctx.
func WithSession(ctx context.Context, s *service.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// ChatID returns the chat an update belongs to, or 0.
func ChatID(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}

// SessionLoader returns middleware that loads the chat's shopping session into context.
// Only private chats get a session.
func SessionLoader(store *service.SessionStore, onCreate func(chatID int64)) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := ChatID(update)
			if chatID == 0 || !isPrivate(update) {
				next(ctx, b, update)
				return
			}

			sess, created := store.FindOrCreate(chatID)
			if created && onCreate != nil {
				onCreate(chatID)
			}
			next(WithSession(ctx, sess), b, update)
		}
	}
}

func isPrivate(update *models.Update) bool {
	switch {
	case update.Message != nil:
		return update.Message.Chat.Type == "private"
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.Type == "private"
	}
	return false
}
