package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "🎁 I work in private chats only. Message me directly to start shopping.",
		})
		return
	}

	sess.ClearDrafts()
	h.showScreen(ctx, b, sess, 0, router.ScreenGifts)
}

func (h *Handler) handleBrowse(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.showScreen(ctx, b, sess, 0, router.ScreenBrowse)
	}
}

// handleStat is an admin command reporting live sessions.
func (h *Handler) handleStat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}
	text := fmt.Sprintf("📊 *Statistics*\n\nActive sessions: %d\nReplies in flight: %d",
		h.store.Len(), h.pacer.Pending())
	h.send(ctx, b, update.Message.Chat.ID, text)
}

// showScreen navigates the session and renders where it ended up. The auth
// guard may land on a different screen than requested.
func (h *Handler) showScreen(ctx context.Context, b *bot.Bot, sess *service.Session, messageID int, screen router.Screen) {
	chatID := sess.ChatID

	if screen == router.ScreenCheckout {
		if err := sess.StartCheckout(); err != nil {
			h.send(ctx, b, chatID, h.reportError(err, "start checkout", chatID))
			return
		}
		h.showCheckout(ctx, b, sess, messageID)
		return
	}

	landed := sess.Navigate(screen)
	cartCount := sess.Cart().Count

	switch landed {
	case router.ScreenBrowse:
		text, kb := renderHome(h.catalog.OurPicks(), conversation.Refinements, h.catalog.VendorGroups(), cartCount)
		h.show(ctx, b, chatID, messageID, text, kb)
	case router.ScreenCart:
		text, kb := renderCart(sess.Cart())
		h.show(ctx, b, chatID, messageID, text, kb)
	case router.ScreenOrders:
		text, kb := renderOrders(sess.Orders(), cartCount)
		h.show(ctx, b, chatID, messageID, text, kb)
	case router.ScreenProfile:
		u, _ := sess.User()
		text, kb := renderProfile(u, len(sess.Orders()), cartCount)
		h.show(ctx, b, chatID, messageID, text, kb)
	case router.ScreenOrderConfirmation:
		order, ok := sess.LastOrder()
		if !ok {
			h.showScreen(ctx, b, sess, messageID, router.ScreenGifts)
			return
		}
		text, kb := renderConfirmation(order)
		h.show(ctx, b, chatID, messageID, text, kb)
	case router.ScreenAuth:
		text, kb := renderAuth(string(sess.AuthMode()))
		h.show(ctx, b, chatID, messageID, text, kb)
	default:
		text, kb := renderWelcome(h.catalog.Prompts(), cartCount)
		h.show(ctx, b, chatID, messageID, text, kb)
	}
}

func (h *Handler) handleNavigate(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, messageID, args, ok := callback(update, cbNav)
	sess := middleware.GetSession(ctx)
	h.handleNoop(ctx, b, update)
	if !ok || sess == nil || len(args) != 1 {
		return
	}

	screen, err := router.ParseScreen(args[0])
	if err != nil {
		return
	}
	// Tabs open a fresh message so the chat above stays readable.
	if router.ShowsBottomNav(screen) {
		messageID = 0
	}
	h.showScreen(ctx, b, sess, messageID, screen)
}
