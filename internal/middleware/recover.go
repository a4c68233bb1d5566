package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from handler panics. onPanic, if
// set, is told about the panic after it is logged.
func Recover(onPanic func(err error, chatID int64)) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				chatID := ChatID(update)
				slog.Error("panic recovered in handler",
					"panic", r,
					"chat_id", chatID,
					"stack", string(debug.Stack()),
				)
				if onPanic != nil {
					onPanic(fmt.Errorf("panic: %v", r), chatID)
				}
			}()
			next(ctx, b, update)
		}
	}
}
