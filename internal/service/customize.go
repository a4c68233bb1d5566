package service

import (
	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/domain"
)

// pendingItem is a product being customized before it is added.
type pendingItem struct {
	product domain.Product
	values  map[string]domain.OptionValue
	qty     int
}

// PendingItem is a snapshot of the product being customized.
type PendingItem struct {
	Product  domain.Product
	Values   map[string]domain.OptionValue
	Quantity int
}

// BeginCustomize starts customizing a product. Any earlier pending item is dropped.
func (s *Session) BeginCustomize(productID string) (domain.Product, error) {
	p, err := s.deps.catalog.Product(productID)
	if err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &pendingItem{product: p, values: make(map[string]domain.OptionValue), qty: 1}
	return p, nil
}

func (s *Session) Pending() (PendingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return PendingItem{}, false
	}
	values := make(map[string]domain.OptionValue, len(s.pending.values))
	for k, v := range s.pending.values {
		values[k] = v
	}
	return PendingItem{Product: s.pending.product, Values: values, Quantity: s.pending.qty}, true
}

// SetPendingOption validates and stores one option value. A blank value clears it.
func (s *Session) SetPendingOption(optionID, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.ErrNoPendingItem
	}
	opt, ok := s.pending.product.Option(optionID)
	if !ok {
		return domain.ErrUnknownOption
	}
	v, err := cart.ParseValue(opt, raw)
	if err != nil {
		return err
	}
	if v == nil {
		delete(s.pending.values, optionID)
		return nil
	}
	s.pending.values[optionID] = *v
	return nil
}

// SetPendingQuantity sets the quantity to add, never below one.
func (s *Session) SetPendingQuantity(qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.ErrNoPendingItem
	}
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	s.pending.qty = qty
	return nil
}

// NextMissingOption returns the first required option still without a value.
func (s *Session) NextMissingOption() (domain.CustomizationOption, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.CustomizationOption{}, false
	}
	for _, opt := range s.pending.product.Options {
		if _, ok := s.pending.values[opt.ID]; opt.Required && !ok {
			return opt, true
		}
	}
	return domain.CustomizationOption{}, false
}

// CommitPending adds the pending item to the cart once every required option is set.
func (s *Session) CommitPending() (domain.LineItem, domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.LineItem{}, domain.Message{}, domain.ErrNoPendingItem
	}
	cz := domain.Customizations{Quantity: s.pending.qty, Options: s.pending.values}
	if err := cart.RequireOptions(s.pending.product, cz); err != nil {
		return domain.LineItem{}, domain.Message{}, err
	}
	item, msg, err := s.addLocked(s.pending.product, cz)
	if err != nil {
		return domain.LineItem{}, domain.Message{}, err
	}
	s.pending = nil
	return item, msg, nil
}

func (s *Session) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}
