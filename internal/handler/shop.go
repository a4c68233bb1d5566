package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/service"
	tg "github.com/set-night/giftshop/internal/telegram"
)

// handleVendorTab opens a vendor's store. Tabs send vt:<vendor>:<page>,
// pagination sends vt:<vendor>:p:<page> and edits in place.
func (h *Handler) handleVendorTab(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, args, ok := callback(update, cbVendor)
	h.handleNoop(ctx, b, update)
	if !ok || len(args) < 2 {
		return
	}

	group, found := h.catalog.VendorGroupByID(args[0])
	if !found {
		return
	}
	pageArg := args[1]
	if len(args) == 3 && args[1] == "p" {
		pageArg = args[2]
	} else {
		messageID = 0
	}
	page, _ := strconv.Atoi(pageArg)

	text, kb := renderVendorPage(group, page)
	h.show(ctx, b, chatID, messageID, text, kb)
}

func (h *Handler) handleProductCard(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, args, ok := callback(update, cbProduct)
	h.handleNoop(ctx, b, update)
	if !ok || len(args) != 1 {
		return
	}

	p, err := h.catalog.Product(args[0])
	if err != nil {
		h.send(ctx, b, chatID, h.reportError(err, "product card", chatID))
		return
	}
	text, kb := renderProduct(p)
	h.show(ctx, b, chatID, 0, text, kb)
}

// handleAddProduct adds a product straight away when it has nothing to
// customize, and opens the customization form otherwise.
func (h *Handler) handleAddProduct(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, _, args, ok := callback(update, cbAdd)
	sess := middleware.GetSession(ctx)
	if !ok || sess == nil || len(args) != 1 {
		h.handleNoop(ctx, b, update)
		return
	}

	p, err := h.catalog.Product(args[0])
	if err != nil {
		h.alert(ctx, b, update, err, sess)
		return
	}
	if cartVendor := sess.Cart().Vendor; cartVendor != "" && cartVendor != p.Vendor {
		h.alert(ctx, b, update, &cart.VendorConflictError{CartVendor: cartVendor, ProductVendor: p.Vendor}, sess)
		return
	}

	if len(p.Options) == 0 {
		_, msg, err := sess.AddToCart(p.ID, nil)
		if err != nil {
			h.alert(ctx, b, update, err, sess)
			return
		}
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "✅ Added to cart", false)
		text, kb := renderAssistant(msg, sess.Cart().Count)
		h.show(ctx, b, sess.ChatID, 0, text, kb)
		return
	}

	if _, err := sess.BeginCustomize(p.ID); err != nil {
		h.alert(ctx, b, update, err, sess)
		return
	}
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	h.showPending(ctx, b, sess, 0)
}

// alert answers a button press with an error popup.
func (h *Handler) alert(ctx context.Context, b *bot.Bot, update *models.Update, err error, sess *service.Session) {
	var conflict *cart.VendorConflictError
	if errors.As(err, &conflict) {
		h.opsLogger.LogVendorConflict(sess.ChatID, conflict.CartVendor, conflict.ProductVendor)
	}
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, h.reportError(err, "button", sess.ChatID), true)
}

func (h *Handler) showPending(ctx context.Context, b *bot.Bot, sess *service.Session, messageID int) {
	item, ok := sess.Pending()
	if !ok {
		h.show(ctx, b, sess.ChatID, messageID, "Nothing to customize. Pick a product first.", nil)
		return
	}
	text, kb := renderCustomize(item)
	h.show(ctx, b, sess.ChatID, messageID, text, kb)
}

// handleCustomize drives the customization form:
// cz:opt:<option>:<choice>, cz:text:<option>, cz:qty:<delta>, cz:ok, cz:cancel.
func (h *Handler) handleCustomize(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, messageID, args, ok := callback(update, cbCustomize)
	sess := middleware.GetSession(ctx)
	if !ok || sess == nil || len(args) == 0 {
		h.handleNoop(ctx, b, update)
		return
	}

	item, pending := sess.Pending()
	if !pending {
		h.alert(ctx, b, update, domain.ErrNoPendingItem, sess)
		return
	}

	switch args[0] {
	case "opt":
		if len(args) != 3 {
			break
		}
		opt, found := item.Product.Option(args[1])
		i, err := strconv.Atoi(args[2])
		if !found || err != nil || i < 0 || i >= len(opt.Choices) {
			h.alert(ctx, b, update, domain.ErrInvalidOptionValue, sess)
			return
		}
		if err := sess.SetPendingOption(opt.ID, opt.Choices[i]); err != nil {
			h.alert(ctx, b, update, err, sess)
			return
		}

	case "text":
		if len(args) != 2 {
			break
		}
		opt, found := item.Product.Option(args[1])
		if !found {
			h.alert(ctx, b, update, domain.ErrUnknownOption, sess)
			return
		}
		sess.Await("option:" + opt.ID)
		hint := "Send the text as a message."
		if opt.Type == domain.OptionNumber {
			hint = "Send a whole number."
		}
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		h.send(ctx, b, sess.ChatID, fmt.Sprintf("✏️ *%s*\n%s", esc(opt.Name), hint))
		return

	case "qty":
		if len(args) != 2 {
			break
		}
		delta, _ := strconv.Atoi(args[1])
		if err := sess.SetPendingQuantity(item.Quantity + delta); err != nil {
			h.alert(ctx, b, update, err, sess)
			return
		}

	case "ok":
		_, msg, err := sess.CommitPending()
		if err != nil {
			h.alert(ctx, b, update, err, sess)
			return
		}
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "✅ Added to cart", false)
		h.show(ctx, b, sess.ChatID, messageID, "✅ *"+esc(item.Product.Name)+"* added to your cart.", nil)
		text, kb := renderAssistant(msg, sess.Cart().Count)
		h.show(ctx, b, sess.ChatID, 0, text, kb)
		return

	case "cancel":
		sess.CancelPending()
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		h.show(ctx, b, sess.ChatID, messageID, "✖️ Cancelled.", nil)
		return
	}

	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	h.showPending(ctx, b, sess, messageID)
}

// answerOption stores a typed value for a text or number option.
func (h *Handler) answerOption(ctx context.Context, b *bot.Bot, sess *service.Session, optionID, value string) {
	if err := sess.SetPendingOption(optionID, value); err != nil {
		msg := h.reportError(err, "set option", sess.ChatID)
		if errors.Is(err, domain.ErrInvalidOptionValue) {
			sess.Await("option:" + optionID)
			msg += " Try again."
		}
		h.send(ctx, b, sess.ChatID, msg)
		return
	}
	h.showPending(ctx, b, sess, 0)
}
