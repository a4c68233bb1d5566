package telegram

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

func TestFormatError(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	msg := FormatError(errors.New("boom"), "add_to_cart", at)
	assert.Contains(t, msg, `add\_to\_cart`)
	assert.Contains(t, msg, "`boom`")
	assert.Contains(t, msg, "2025-03-04 05:06:07")
}

func TestFormatOrderPlaced(t *testing.T) {
	order := domain.Order{
		ID:       "LUG123456",
		Delivery: domain.DeliveryDetails{District: "Al Olaya"},
		Payment:  domain.PaymentMethod{Name: "Apple Pay"},
		Items:    make([]domain.LineItem, 2),
		Total:    decimal.RequireFromString("135"),
	}
	msg := FormatOrderPlaced(99, order)
	assert.Contains(t, msg, "LUG123456")
	assert.Contains(t, msg, "`99`")
	assert.Contains(t, msg, "*Items:* 2")
	assert.Contains(t, msg, "135.00 SAR")
	assert.Contains(t, msg, "Apple Pay")
}

func TestOpsLoggerTopics(t *testing.T) {
	l := NewOpsLogger(nil, &config.Config{LogTopicError: 1, LogTopicOrderPlaced: 2, LogTopicConflict: 3, LogTopicSignUp: 4})
	assert.Equal(t, 1, l.topicID(LogTypeError))
	assert.Equal(t, 2, l.topicID(LogTypeOrderPlaced))
	assert.Equal(t, 3, l.topicID(LogTypeVendorConflict))
	assert.Equal(t, 4, l.topicID(LogTypeSignUp))
	assert.Equal(t, 0, l.topicID("other"))

	// No chat configured: nothing is sent, so a nil bot is fine.
	l.LogError(errors.New("x"), "test")

	var nilLogger *OpsLogger
	nilLogger.LogError(errors.New("x"), "test")
}
