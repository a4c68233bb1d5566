package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryDetails struct {
	FullName     string
	Phone        string
	Street       string
	Building     string
	District     string
	City         string
	Instructions string
	DeliveryDate string
	TimeSlot     string
	IsGift       bool
	Recipient    string
	GiftMessage  string
}

type PaymentType string

const (
	PaymentCard     PaymentType = "card"
	PaymentApplePay PaymentType = "apple_pay"
	PaymentCash     PaymentType = "cash"
)

type PaymentMethod struct {
	ID   string
	Type PaymentType
	Name string
}

// Order exists only between placement and the confirmation screen.
type Order struct {
	ID       string
	Delivery DeliveryDetails
	Payment  PaymentMethod
	Items    []LineItem
	Total    decimal.Decimal
	PlacedAt time.Time
}
