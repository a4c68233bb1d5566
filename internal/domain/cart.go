package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OptionValue is a type-checked customization value.
type OptionValue struct {
	Type   OptionType
	Text   string
	Number int
}

func (v OptionValue) String() string {
	if v.Type == OptionNumber {
		return strconv.Itoa(v.Number)
	}
	return v.Text
}

// Customizations is what the shopper picked for a product before adding it.
// Zero Quantity means one.
type Customizations struct {
	Quantity int
	Options  map[string]OptionValue
}

type LineItem struct {
	ID             string
	ProductID      string
	Name           string
	Vendor         string
	Price          decimal.Decimal
	Image          string
	Quantity       int
	Customizations map[string]OptionValue
	AddedAt        time.Time
}

func (i *LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	ServiceFee  decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}
