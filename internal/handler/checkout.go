package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
	tg "github.com/set-night/giftshop/internal/telegram"
)

func (h *Handler) handleCheckout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.showScreen(ctx, b, sess, 0, router.ScreenCheckout)
	}
}

func (h *Handler) showCheckout(ctx context.Context, b *bot.Bot, sess *service.Session, messageID int) {
	v, err := sess.Checkout()
	if err != nil {
		h.show(ctx, b, sess.ChatID, messageID, h.reportError(err, "checkout", sess.ChatID), nil)
		return
	}
	text, kb := renderCheckout(v)
	h.show(ctx, b, sess.ChatID, messageID, text, kb)
}

// handleCheckoutAction handles the checkout buttons:
// co:field:<name>, co:pick:<district|date|slot>, co:district|date|slot:<value>,
// co:gift, co:pay:<method>, co:terms, co:next, co:back, co:show, co:place.
func (h *Handler) handleCheckoutAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, messageID, args, ok := callback(update, cbCheckout)
	sess := middleware.GetSession(ctx)
	if !ok || sess == nil || len(args) == 0 {
		h.handleNoop(ctx, b, update)
		return
	}
	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	v, err := sess.Checkout()
	if err != nil {
		h.alert(ctx, b, update, err, sess)
		return
	}

	switch args[0] {
	case "field":
		sess.Await("delivery:" + arg)
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		h.send(ctx, b, sess.ChatID, fmt.Sprintf("✏️ Send the *%s*.", esc(fieldLabel(arg))))
		return

	case "pick":
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		text, kb := h.picker(arg, v.Delivery)
		h.show(ctx, b, sess.ChatID, messageID, text, kb)
		return

	case "district", "slot", "date":
		err = sess.UpdateDelivery(func(d *domain.DeliveryDetails) {
			setPicked(d, args[0], arg)
		})

	case "gift":
		err = sess.UpdateDelivery(func(d *domain.DeliveryDetails) {
			d.IsGift = !d.IsGift
		})

	case "pay":
		err = sess.SelectPayment(arg)

	case "terms":
		err = sess.AcceptTerms(!v.Terms)

	case "next":
		err = sess.CheckoutNext()

	case "back":
		if sess.CheckoutBack() == router.ScreenCart {
			tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
			text, kb := renderCart(sess.Cart())
			h.show(ctx, b, sess.ChatID, messageID, text, kb)
			return
		}

	case "place":
		if v.Step != checkout.StepReview || !v.Terms {
			h.alert(ctx, b, update, domain.ErrTermsNotAccepted, sess)
			return
		}
		h.placeOrder(ctx, b, update, sess, messageID)
		return
	}
	if err != nil {
		h.alert(ctx, b, update, err, sess)
		return
	}

	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	h.showCheckout(ctx, b, sess, messageID)
}

func (h *Handler) picker(kind string, d domain.DeliveryDetails) (string, *models.InlineKeyboardMarkup) {
	switch kind {
	case "district":
		districts := checkout.Districts()
		return renderPicker("Choose a district", "district", districts, indexes(len(districts)), d.District)
	case "slot":
		slots := checkout.TimeSlots()
		return renderPicker("Choose a delivery time", "slot", slots, indexes(len(slots)), d.TimeSlot)
	default:
		dates := checkout.DeliveryDates(time.Now(), config.DeliveryDateChoices)
		return renderPicker("Choose a delivery date", "date", dates, dates, d.DeliveryDate)
	}
}

func indexes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// setPicked stores a picker choice. Districts and slots arrive as indexes,
// dates as the date itself.
func setPicked(d *domain.DeliveryDetails, kind, value string) {
	switch kind {
	case "date":
		if _, err := time.Parse(config.ShortDateFormat, value); err == nil {
			d.DeliveryDate = value
		}
	case "district":
		if i, err := strconv.Atoi(value); err == nil {
			if districts := checkout.Districts(); i >= 0 && i < len(districts) {
				d.District = districts[i]
			}
		}
	case "slot":
		if i, err := strconv.Atoi(value); err == nil {
			if slots := checkout.TimeSlots(); i >= 0 && i < len(slots) {
				d.TimeSlot = slots[i]
			}
		}
	}
}

// answerDelivery stores a typed delivery field and shows the form again.
func (h *Handler) answerDelivery(ctx context.Context, b *bot.Bot, sess *service.Session, field, value string) {
	known := true
	err := sess.UpdateDelivery(func(d *domain.DeliveryDetails) {
		known = setDeliveryValue(d, field, value)
	})
	if err != nil {
		h.send(ctx, b, sess.ChatID, h.reportError(err, "update delivery", sess.ChatID))
		return
	}
	if !known {
		return
	}
	h.showCheckout(ctx, b, sess, 0)
}

func (h *Handler) placeOrder(ctx context.Context, b *bot.Bot, update *models.Update, sess *service.Session, messageID int) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "⏳ Placing your order...", false)
	h.show(ctx, b, sess.ChatID, messageID, "⏳ Processing your order...", nil)

	order, err := sess.PlaceOrder(ctx)
	if err != nil {
		h.send(ctx, b, sess.ChatID, h.reportError(err, "place order", sess.ChatID))
		h.showCheckout(ctx, b, sess, 0)
		return
	}

	h.opsLogger.LogOrderPlaced(sess.ChatID, order)
	text, kb := renderConfirmation(order)
	h.show(ctx, b, sess.ChatID, messageID, text, kb)
}
