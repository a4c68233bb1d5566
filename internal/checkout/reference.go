package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

var timeSlots = []string{
	"9:00 AM - 11:00 AM",
	"11:00 AM - 1:00 PM",
	"1:00 PM - 3:00 PM",
	"3:00 PM - 5:00 PM",
	"5:00 PM - 7:00 PM",
	"7:00 PM - 9:00 PM",
}

var districts = []string{
	"Al Hamra",
	"Al Rawdah",
	"Al Zahra",
	"Corniche",
	"Downtown",
	"King Abdullah Economic City",
	"North Jeddah",
	"South Jeddah",
}

var paymentMethods = []domain.PaymentMethod{
	{ID: "card", Type: domain.PaymentCard, Name: "Credit/Debit Card"},
	{ID: "apple_pay", Type: domain.PaymentApplePay, Name: "Apple Pay"},
	{ID: "cash", Type: domain.PaymentCash, Name: "Cash on Delivery"},
}

func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

func Districts() []string {
	return append([]string(nil), districts...)
}

func PaymentMethods() []domain.PaymentMethod {
	return append([]domain.PaymentMethod(nil), paymentMethods...)
}

func PaymentMethodByID(id string) (domain.PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// EarliestDeliveryDate is tomorrow, formatted as a delivery date.
func EarliestDeliveryDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(config.ShortDateFormat)
}

// DeliveryDates offers n consecutive dates starting tomorrow.
func DeliveryDates(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(config.ShortDateFormat))
	}
	return dates
}

// NewOrderID returns an id like LUG-2025-042917.
func NewOrderID(now time.Time) (string, error) {
	var digits strings.Builder
	for i := 0; i < config.OrderIDDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}
		digits.WriteByte(byte('0' + n.Int64()))
	}
	return fmt.Sprintf("%s-%d-%s", config.OrderIDPrefix, now.Year(), digits.String()), nil
}
