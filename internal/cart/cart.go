// Package cart keeps the shopper's line items. A cart only ever holds
// products from one vendor.
package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/shopspring/decimal"
)

// Pricing holds the fee schedule applied by Totals.
type Pricing struct {
	FreeDeliveryOver decimal.Decimal
	DeliveryFee      decimal.Decimal
	ServiceFee       decimal.Decimal
	TaxRate          decimal.Decimal
}

// DefaultPricing is the storefront fee schedule.
func DefaultPricing() Pricing {
	return Pricing{
		FreeDeliveryOver: decimal.NewFromInt(config.FreeDeliveryOver),
		DeliveryFee:      decimal.NewFromInt(config.DeliveryFee),
		ServiceFee:       decimal.NewFromInt(config.ServiceFee),
		TaxRate:          decimal.RequireFromString(config.TaxRate),
	}
}

// VendorConflictError is returned when a product from another vendor is added
// to a non-empty cart.
type VendorConflictError struct {
	CartVendor    string
	ProductVendor string
}

func (e *VendorConflictError) Error() string {
	return fmt.Sprintf("cart holds items from %s, cannot add from %s", e.CartVendor, e.ProductVendor)
}

func (e *VendorConflictError) Is(target error) bool {
	return target == domain.ErrVendorConflict
}

// Cart is not safe for concurrent use.
type Cart struct {
	pricing Pricing
	items   []domain.LineItem
	now     func() time.Time
}

func New(pricing Pricing) *Cart {
	return &Cart{pricing: pricing, now: time.Now}
}

// Vendor is the vendor of the current items, empty for an empty cart.
func (c *Cart) Vendor() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].Vendor
}

// Add appends a new line item. Adding the same product twice yields two lines.
func (c *Cart) Add(p domain.Product, cz domain.Customizations) (domain.LineItem, error) {
	if v := c.Vendor(); v != "" && v != p.Vendor {
		return domain.LineItem{}, &VendorConflictError{CartVendor: v, ProductVendor: p.Vendor}
	}
	if err := Validate(p, cz); err != nil {
		return domain.LineItem{}, fmt.Errorf("add %s: %w", p.ID, err)
	}

	qty := cz.Quantity
	if qty == 0 {
		qty = 1
	}

	item := domain.LineItem{
		ID:             uuid.NewString(),
		ProductID:      p.ID,
		Name:           p.Name,
		Vendor:         p.Vendor,
		Price:          p.Price,
		Image:          p.Image,
		Quantity:       qty,
		Customizations: copyOptions(cz.Options),
		AddedAt:        c.now(),
	}
	c.items = append(c.items, item)
	return item, nil
}

// UpdateQuantity sets the quantity of a line. Zero removes it.
func (c *Cart) UpdateQuantity(itemID string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("update %s to %d: %w", itemID, qty, domain.ErrInvalidQuantity)
	}
	i := c.index(itemID)
	if i < 0 {
		return fmt.Errorf("update %s: %w", itemID, domain.ErrItemNotFound)
	}
	if qty == 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i].Quantity = qty
	return nil
}

func (c *Cart) Remove(itemID string) error {
	i := c.index(itemID)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", itemID, domain.ErrItemNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *Cart) ClearAll() {
	c.items = nil
}

// Item returns a copy of one line.
func (c *Cart) Item(itemID string) (domain.LineItem, error) {
	i := c.index(itemID)
	if i < 0 {
		return domain.LineItem{}, fmt.Errorf("item %s: %w", itemID, domain.ErrItemNotFound)
	}
	return cloneItem(c.items[i]), nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(c.items))
	for i, it := range c.items {
		out[i] = cloneItem(it)
	}
	return out
}

// Len is the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Totals applies the fee schedule. An empty cart totals to zero everywhere.
func (c *Cart) Totals() domain.Totals {
	return c.pricing.Totals(c.items)
}

func (p Pricing) Totals(items []domain.LineItem) domain.Totals {
	if len(items) == 0 {
		return domain.Totals{}
	}

	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}

	delivery := p.DeliveryFee
	if subtotal.GreaterThan(p.FreeDeliveryOver) {
		delivery = decimal.Zero
	}
	tax := subtotal.Mul(p.TaxRate)

	return domain.Totals{
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		ServiceFee:  p.ServiceFee,
		Tax:         tax,
		Total:       subtotal.Add(delivery).Add(p.ServiceFee).Add(tax),
	}
}

// VendorLines is a vendor with its lines, for display.
type VendorLines struct {
	Vendor string
	Items  []domain.LineItem
}

// GroupByVendor buckets lines by vendor in order of first appearance.
func (c *Cart) GroupByVendor() []VendorLines {
	var groups []VendorLines
	pos := make(map[string]int)
	for _, it := range c.items {
		i, ok := pos[it.Vendor]
		if !ok {
			i = len(groups)
			pos[it.Vendor] = i
			groups = append(groups, VendorLines{Vendor: it.Vendor})
		}
		groups[i].Items = append(groups[i].Items, cloneItem(it))
	}
	return groups
}

func (c *Cart) index(itemID string) int {
	for i := range c.items {
		if c.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func cloneItem(it domain.LineItem) domain.LineItem {
	it.Customizations = copyOptions(it.Customizations)
	return it
}

func copyOptions(in map[string]domain.OptionValue) map[string]domain.OptionValue {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]domain.OptionValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
