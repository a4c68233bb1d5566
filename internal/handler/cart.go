package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/router"
	tg "github.com/set-night/giftshop/internal/telegram"
)

func (h *Handler) handleCart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.showScreen(ctx, b, sess, 0, router.ScreenCart)
	}
}

// handleCartAction handles the cart controls:
// ct:inc|dec|rm:<item>, ct:clear, ct:close, ct:checkout.
func (h *Handler) handleCartAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, messageID, args, ok := callback(update, cbCart)
	sess := middleware.GetSession(ctx)
	if !ok || sess == nil || len(args) == 0 {
		h.handleNoop(ctx, b, update)
		return
	}

	var err error
	switch args[0] {
	case "inc", "dec", "rm":
		if len(args) != 2 {
			h.handleNoop(ctx, b, update)
			return
		}
		switch args[0] {
		case "inc":
			err = sess.ChangeQuantity(args[1], 1)
		case "dec":
			err = sess.ChangeQuantity(args[1], -1)
		default:
			err = sess.RemoveItem(args[1])
		}
	case "clear":
		sess.ClearCart()
	case "close":
		h.handleNoop(ctx, b, update)
		h.show(ctx, b, sess.ChatID, messageID, "🛍 Tell me what you're looking for!", nil)
		h.showScreen(ctx, b, sess, 0, router.ScreenGifts)
		return
	case "checkout":
		h.handleNoop(ctx, b, update)
		h.showScreen(ctx, b, sess, messageID, router.ScreenCheckout)
		return
	}
	if err != nil {
		h.alert(ctx, b, update, err, sess)
		return
	}

	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	text, kb := renderCart(sess.Cart())
	h.show(ctx, b, sess.ChatID, messageID, text, kb)
}
