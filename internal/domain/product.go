package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type OptionType string

const (
	OptionSelect OptionType = "select"
	OptionText   OptionType = "text"
	OptionNumber OptionType = "number"
)

func (t OptionType) Valid() bool {
	switch t {
	case OptionSelect, OptionText, OptionNumber:
		return true
	}
	return false
}

type CustomizationOption struct {
	ID       string
	Name     string
	Type     OptionType
	Required bool
	Choices  []string
}

type Product struct {
	ID          string
	Name        string
	Vendor      string
	Price       decimal.Decimal
	Image       string
	Rating      float64
	ReviewCount int
	Description string
	Options     []CustomizationOption
}

// Option returns the customization option with the given id.
func (p *Product) Option(id string) (CustomizationOption, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return CustomizationOption{}, false
}

// HasUsableImage reports whether the image reference is not a placeholder or a failed load.
func (p *Product) HasUsableImage() bool {
	if p.Image == "" {
		return false
	}
	img := strings.ToLower(p.Image)
	return !strings.Contains(img, "placeholder") && !strings.Contains(img, "error")
}

// VendorGroup buckets a vendor's products for tabbed display.
type VendorGroup struct {
	ID          string
	Name        string
	Description string
	Products    []Product
}

// Prompt is a predefined welcome card.
type Prompt struct {
	ID    string
	Title string
	Query string
}
