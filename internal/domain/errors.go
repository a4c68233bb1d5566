package domain

import "errors"

var (
	ErrVendorConflict       = errors.New("cart holds items from another vendor")
	ErrItemNotFound         = errors.New("item not found in cart")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrProductNotFound      = errors.New("product not found")
	ErrUnknownOption        = errors.New("unknown customization option")
	ErrInvalidOptionValue   = errors.New("invalid customization value")
	ErrMissingOption        = errors.New("required customization missing")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrEmptyUtterance       = errors.New("empty message")
	ErrUnknownSuggestion    = errors.New("unknown suggestion")
	ErrSuggestionUsed       = errors.New("suggestion already used")
	ErrUnknownPrompt        = errors.New("unknown prompt")
	ErrDeliveryIncomplete   = errors.New("delivery details incomplete")
	ErrPaymentNotSelected   = errors.New("payment method not selected")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrTermsNotAccepted     = errors.New("terms not accepted")
	ErrWrongStep            = errors.New("action not allowed at this checkout step")
	ErrOrderPlaced          = errors.New("order already placed")
	ErrOrderInProgress      = errors.New("order is being processed")
	ErrNoCheckout           = errors.New("no checkout in progress")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrTermsRequired        = errors.New("terms and conditions must be accepted")
	ErrNotSignedIn          = errors.New("not signed in")
	ErrUnknownScreen        = errors.New("unknown screen")
	ErrNoPendingItem        = errors.New("no item being customized")
)
