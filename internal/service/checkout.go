package service

import (
	"context"
	"fmt"

	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
)

// StartCheckout opens a fresh checkout for the current cart.
func (s *Session) StartCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placing {
		return domain.ErrOrderInProgress
	}
	if s.cart.Len() == 0 {
		return domain.ErrEmptyCart
	}
	s.flow = checkout.New(s.deps.shop.OrderProcessingDelay)
	s.router.NavigateTo(router.ScreenCheckout, s.user != nil)
	return nil
}

// CheckoutView is a snapshot of the checkout in progress.
type CheckoutView struct {
	Step     checkout.Step
	Delivery domain.DeliveryDetails
	Missing  []string
	Payment  *domain.PaymentMethod
	Terms    bool
	Cart     CartView
}

func (s *Session) Checkout() (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return CheckoutView{}, domain.ErrNoCheckout
	}
	v := CheckoutView{
		Step:     s.flow.Step(),
		Delivery: s.flow.Delivery(),
		Missing:  s.flow.Missing(),
		Terms:    s.flow.TermsAccepted(),
		Cart:     s.cartViewLocked(),
	}
	if m, ok := s.flow.Payment(); ok {
		v.Payment = &m
	}
	return v, nil
}

// UpdateDelivery applies fn to the delivery form.
func (s *Session) UpdateDelivery(fn func(*domain.DeliveryDetails)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	d := s.flow.Delivery()
	fn(&d)
	return s.flow.SetDelivery(d)
}

func (s *Session) SelectPayment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.flow.SelectPayment(id)
}

func (s *Session) AcceptTerms(accepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.flow.AcceptTerms(accepted)
}

func (s *Session) CheckoutNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	return s.flow.Next()
}

// CheckoutBack steps back. From the delivery step it leaves checkout for the cart.
func (s *Session) CheckoutBack() router.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placing {
		return s.router.Current()
	}
	if s.flow != nil && s.flow.Back() {
		return s.router.Current()
	}
	s.flow = nil
	return s.router.NavigateTo(router.ScreenCart, s.user != nil)
}

func (s *Session) editableLocked() error {
	if s.flow == nil {
		return domain.ErrNoCheckout
	}
	if s.placing {
		return domain.ErrOrderInProgress
	}
	return nil
}

// PlaceOrder confirms the order, empties the cart and moves to the confirmation screen.
// The processing delay runs without the session lock; the checkout is frozen meanwhile.
func (s *Session) PlaceOrder(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	if s.cart.Len() == 0 {
		s.mu.Unlock()
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err := s.flow.CanPlace(); err != nil {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}
	flow := s.flow
	items := s.cart.Items()
	total := s.cart.Totals().Total
	s.placing = true
	s.mu.Unlock()

	order, err := flow.PlaceOrder(ctx, total)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.placing = false
	if err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}
	order.Items = items

	s.cart.ClearAll()
	s.flow = nil
	s.lastOrder = &order
	s.orders = append(s.orders, order)
	s.router.NavigateTo(router.ScreenOrderConfirmation, s.user != nil)
	return order, nil
}

func (s *Session) LastOrder() (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOrder == nil {
		return domain.Order{}, false
	}
	return *s.lastOrder, true
}

// Orders lists the orders placed in this session, newest first.
func (s *Session) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.orders[i])
	}
	return out
}
