package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

// OpsLogger mirrors notable shop events into topics of an operator chat.
type OpsLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewOpsLogger(b *bot.Bot, cfg *config.Config) *OpsLogger {
	return &OpsLogger{bot: b, cfg: cfg}
}

type LogType string

const (
	LogTypeError          LogType = "error"
	LogTypeOrderPlaced    LogType = "orderPlaced"
	LogTypeVendorConflict LogType = "vendorConflict"
	LogTypeSignUp         LogType = "signUp"
)

func (l *OpsLogger) Log(logType LogType, message string) {
	if l == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.topicID(logType)
	if topicID == 0 {
		return
	}

	if len([]rune(message)) > config.MaxTelegramMessageLen {
		message = string([]rune(message)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *OpsLogger) LogError(err error, where string) {
	l.Log(LogTypeError, FormatError(err, where, time.Now()))
}

func (l *OpsLogger) LogOrderPlaced(chatID int64, order domain.Order) {
	l.Log(LogTypeOrderPlaced, FormatOrderPlaced(chatID, order))
}

func (l *OpsLogger) LogVendorConflict(chatID int64, cartVendor, productVendor string) {
	msg := fmt.Sprintf("🚫 *Vendor Conflict*\n\n*Chat:* `%d`\n*Cart:* %s\n*Tried:* %s",
		chatID, EscapeMarkdown(cartVendor), EscapeMarkdown(productVendor))
	l.Log(LogTypeVendorConflict, msg)
}

func (l *OpsLogger) LogSignUp(chatID int64, user domain.User) {
	msg := fmt.Sprintf("👤 *New Sign-Up*\n\n*Chat:* `%d`\n*Name:* %s\n*Email:* %s",
		chatID, EscapeMarkdown(user.Name), EscapeMarkdown(user.Email))
	l.Log(LogTypeSignUp, msg)
}

func FormatError(err error, where string, at time.Time) string {
	return fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		EscapeMarkdown(where), err.Error(), at.Format("2006-01-02 15:04:05"))
}

func FormatOrderPlaced(chatID int64, order domain.Order) string {
	return fmt.Sprintf("🎁 *Order Placed*\n\n*Order:* `%s`\n*Chat:* `%d`\n*Items:* %d\n*Total:* %s %s\n*Payment:* %s\n*District:* %s",
		order.ID, chatID, len(order.Items), order.Total.StringFixed(2), config.Currency,
		order.Payment.Name, EscapeMarkdown(order.Delivery.District))
}

func (l *OpsLogger) topicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeOrderPlaced:
		return l.cfg.LogTopicOrderPlaced
	case LogTypeVendorConflict:
		return l.cfg.LogTopicConflict
	case LogTypeSignUp:
		return l.cfg.LogTopicSignUp
	default:
		return 0
	}
}
