package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs what each update was and how long it took.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			kind, detail := describe(update)

			next(ctx, b, update)

			slog.Debug("update processed",
				"type", kind,
				"detail", detail,
				"chat_id", ChatID(update),
				"duration", time.Since(start),
			)
		}
	}
}

// describe names the update kind plus a short, non-personal detail:
// the command for commands, the callback prefix for button presses.
func describe(update *models.Update) (kind, detail string) {
	switch {
	case update.Message != nil && update.Message.Voice != nil:
		return "voice", ""
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
		cmd, _, _ := strings.Cut(update.Message.Text, " ")
		return "command", cmd
	case update.Message != nil:
		return "message", ""
	case update.CallbackQuery != nil:
		prefix, _, _ := strings.Cut(update.CallbackQuery.Data, ":")
		return "callback_query", prefix
	}
	return "unknown", ""
}
