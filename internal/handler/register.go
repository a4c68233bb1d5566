package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	tg "github.com/set-night/giftshop/internal/telegram"
)

// Callback data prefixes. Arguments follow, separated by ':'.
const (
	cbPrompt     = "pr"
	cbSuggestion = "sg"
	cbAction     = "qa"
	cbVendor     = "vt"
	cbProduct    = "pd"
	cbAdd        = "add"
	cbCustomize  = "cz"
	cbCart       = "ct"
	cbCheckout   = "co"
	cbNav        = "nav"
	cbAuth       = "au"
	cbNoop       = "noop"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/browse", bot.MatchTypePrefix, h.handleBrowse)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cart", bot.MatchTypePrefix, h.handleCart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/checkout", bot.MatchTypePrefix, h.handleCheckout)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/orders", bot.MatchTypePrefix, h.handleOrders)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypePrefix, h.handleProfile)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signin", bot.MatchTypePrefix, h.handleSignIn)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypePrefix, h.handleSignUp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signout", bot.MatchTypePrefix, h.handleSignOut)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/voice", bot.MatchTypePrefix, h.handleVoice)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stat", bot.MatchTypePrefix, h.handleStat)

	// Conversation callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbPrompt+":", bot.MatchTypePrefix, h.handlePromptClick)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbSuggestion+":", bot.MatchTypePrefix, h.handleSuggestionClick)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbAction+":", bot.MatchTypePrefix, h.handleQuickAction)

	// Catalog callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbVendor+":", bot.MatchTypePrefix, h.handleVendorTab)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbProduct+":", bot.MatchTypePrefix, h.handleProductCard)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbAdd+":", bot.MatchTypePrefix, h.handleAddProduct)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCustomize+":", bot.MatchTypePrefix, h.handleCustomize)

	// Cart and checkout callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCart+":", bot.MatchTypePrefix, h.handleCartAction)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCheckout+":", bot.MatchTypePrefix, h.handleCheckoutAction)

	// Navigation and account callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbNav+":", bot.MatchTypePrefix, h.handleNavigate)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbAuth+":", bot.MatchTypePrefix, h.handleAuthAction)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbNoop, bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges buttons that only display something, like page counters.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	}
}

// callback unpacks a button press: the chat, the message carrying the
// keyboard and the arguments after prefix.
func callback(update *models.Update, prefix string) (chatID int64, messageID int, args []string, ok bool) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return 0, 0, nil, false
	}
	msg := cq.Message.Message
	return msg.Chat.ID, msg.ID, tg.ParseCallback(cq.Data, prefix), true
}

// show replaces the message at messageID, or sends a new one when messageID is 0.
func (h *Handler) show(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, kb *models.InlineKeyboardMarkup) {
	var markup models.ReplyMarkup
	if kb != nil {
		markup = kb
	}

	if messageID != 0 {
		err := tg.EditMessage(ctx, b, chatID, messageID, text, markup)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			return
		}
		slog.Debug("edit screen failed, sending new message", "chat_id", chatID, "error", err)
	}
	if err := tg.SendLongMessage(ctx, b, chatID, text, markup); err != nil {
		slog.Error("send screen", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.show(ctx, b, chatID, 0, text, nil)
}
