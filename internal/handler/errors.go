package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/domain"
)

// userMessage turns an error into the text shown to the shopper. known is
// false for errors that are not the shopper's doing.
func userMessage(err error) (msg string, known bool) {
	var conflict *cart.VendorConflictError
	var missingOpt *cart.MissingOptionError
	var incomplete *checkout.DeliveryIncompleteError

	switch {
	case errors.As(err, &conflict):
		return fmt.Sprintf("🚫 Cannot mix vendors in cart. Your cart has items from %s. Clear your cart first to shop from %s.",
			conflict.CartVendor, conflict.ProductVendor), true
	case errors.As(err, &missingOpt):
		return fmt.Sprintf("Please choose %s first.", strings.ToLower(missingOpt.Option.Name)), true
	case errors.As(err, &incomplete):
		return "Please fill in: " + strings.Join(incomplete.Missing, ", ") + ".", true
	case errors.Is(err, domain.ErrInvalidOptionValue):
		return "That value doesn't fit this option.", true
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be at least 1.", true
	case errors.Is(err, domain.ErrItemNotFound):
		return "That item is no longer in your cart.", true
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUnknownOption):
		return "That product is no longer available.", true
	case errors.Is(err, domain.ErrEmptyCart):
		return "🛒 Your cart is empty.", true
	case errors.Is(err, domain.ErrEmptyUtterance):
		return "Tell me what you're looking for, like \"flowers for my mom\".", true
	case errors.Is(err, domain.ErrSuggestionUsed):
		return "You already picked that one.", true
	case errors.Is(err, domain.ErrUnknownSuggestion), errors.Is(err, domain.ErrUnknownPrompt):
		return "That option is no longer available.", true
	case errors.Is(err, domain.ErrPaymentNotSelected):
		return "Please choose a payment method.", true
	case errors.Is(err, domain.ErrUnknownPaymentMethod):
		return "That payment method is not supported.", true
	case errors.Is(err, domain.ErrTermsNotAccepted), errors.Is(err, domain.ErrTermsRequired):
		return "Please accept the terms and conditions", true
	case errors.Is(err, domain.ErrOrderInProgress):
		return "⏳ Your order is being processed.", true
	case errors.Is(err, domain.ErrWrongStep), errors.Is(err, domain.ErrOrderPlaced), errors.Is(err, domain.ErrNoCheckout):
		return "This checkout is no longer active. Open your /cart to start again.", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password", true
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Passwords do not match", true
	case errors.Is(err, domain.ErrNoPendingItem):
		return "Pick a product first.", true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled. Please try again.", true
	}
	return "❌ Something went wrong. Please try again.", false
}

// reportError logs unexpected errors and mirrors them to the ops chat.
// It returns the text for the shopper.
func (h *Handler) reportError(err error, where string, chatID int64) string {
	msg, known := userMessage(err)
	if known {
		slog.Debug("shopper error", "where", where, "chat_id", chatID, "error", err)
		return msg
	}
	slog.Error(where, "chat_id", chatID, "error", err)
	h.opsLogger.LogError(err, where)
	return msg
}
