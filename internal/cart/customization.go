package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/set-night/giftshop/internal/domain"
)

// MissingOptionError names the first required option without a value.
type MissingOptionError struct {
	ProductID string
	Option    domain.CustomizationOption
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("product %s: %s is required", e.ProductID, e.Option.Name)
}

func (e *MissingOptionError) Is(target error) bool {
	return target == domain.ErrMissingOption
}

// ParseCustomizations builds customizations from raw form values. The keys
// "quantity" and "qty" set the quantity; every other key must be an option
// declared by the product.
func ParseCustomizations(p domain.Product, raw map[string]string) (domain.Customizations, error) {
	var cz domain.Customizations
	for key, value := range raw {
		value = strings.TrimSpace(value)

		if key == "quantity" || key == "qty" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return domain.Customizations{}, fmt.Errorf("parse quantity %q: %w", value, domain.ErrInvalidQuantity)
			}
			cz.Quantity = n
			continue
		}

		opt, ok := p.Option(key)
		if !ok {
			return domain.Customizations{}, fmt.Errorf("option %q for %s: %w", key, p.ID, domain.ErrUnknownOption)
		}
		v, err := ParseValue(opt, value)
		if err != nil {
			return domain.Customizations{}, err
		}
		if v == nil {
			continue
		}
		if cz.Options == nil {
			cz.Options = make(map[string]domain.OptionValue)
		}
		cz.Options[key] = *v
	}
	return cz, nil
}

// ParseValue converts one raw value for opt. A blank value yields nil.
func ParseValue(opt domain.CustomizationOption, raw string) (*domain.OptionValue, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	switch opt.Type {
	case domain.OptionSelect:
		for _, c := range opt.Choices {
			if strings.EqualFold(c, raw) {
				return &domain.OptionValue{Type: domain.OptionSelect, Text: c}, nil
			}
		}
		return nil, fmt.Errorf("%s %q: %w", opt.Name, raw, domain.ErrInvalidOptionValue)
	case domain.OptionNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", opt.Name, raw, domain.ErrInvalidOptionValue)
		}
		return &domain.OptionValue{Type: domain.OptionNumber, Number: n}, nil
	default:
		return &domain.OptionValue{Type: domain.OptionText, Text: raw}, nil
	}
}

// Validate type-checks customizations against the product's declared options.
func Validate(p domain.Product, cz domain.Customizations) error {
	if cz.Quantity < 0 {
		return fmt.Errorf("quantity %d: %w", cz.Quantity, domain.ErrInvalidQuantity)
	}
	for key, v := range cz.Options {
		opt, ok := p.Option(key)
		if !ok {
			return fmt.Errorf("option %q: %w", key, domain.ErrUnknownOption)
		}
		if v.Type != opt.Type {
			return fmt.Errorf("%s: expected %s value: %w", opt.Name, opt.Type, domain.ErrInvalidOptionValue)
		}
		if opt.Type == domain.OptionSelect && !hasChoice(opt.Choices, v.Text) {
			return fmt.Errorf("%s %q: %w", opt.Name, v.Text, domain.ErrInvalidOptionValue)
		}
	}
	return nil
}

// RequireOptions reports the first required option, in declaration order, that has no value.
func RequireOptions(p domain.Product, cz domain.Customizations) error {
	for _, opt := range p.Options {
		if !opt.Required {
			continue
		}
		v, ok := cz.Options[opt.ID]
		if !ok || (v.Type != domain.OptionNumber && strings.TrimSpace(v.Text) == "") {
			return &MissingOptionError{ProductID: p.ID, Option: opt}
		}
	}
	return nil
}

func hasChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
