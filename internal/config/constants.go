package config

import "time"

const (
	// Pricing (SAR)
	FreeDeliveryOver = 200
	DeliveryFee      = 15
	ServiceFee       = 5
	TaxRate          = "0.15"

	// Currency label used in rendered prices
	Currency = "SAR"

	// Conversation
	MaxSuggestions       = 3
	SuggestionWindow     = 3
	ProductSelectionSize = 6
	MinProductSelection  = 5
	OurPicksSize         = 4
	VendorPreviewSize    = 2

	// Order ids look like LUG-2025-123456
	OrderIDPrefix = "LUG"
	OrderIDDigits = 6

	// Checkout
	DefaultCity          = "Jeddah"
	DeliveryDateChoices  = 5
	EstimatedDeliveryMsg = "Tomorrow, 2:00 PM - 4:00 PM"

	// Telegram limits
	MaxTelegramMessageLen = 4096
	MaxCallbackDataLen    = 64

	// Session janitor interval
	SessionCleanupInterval = 10 * time.Minute

	// Vendor store page size
	ProductsPerPage = 4
)

// ShortDateFormat is the layout used for delivery dates.
const ShortDateFormat = "2006-01-02"
