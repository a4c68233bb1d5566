// Package checkout is the three step checkout: delivery, payment, review.
// Every forward step is gated on the current step being complete.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/shopspring/decimal"
)

type Step int

const (
	StepDelivery Step = iota
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// DeliveryIncompleteError lists the delivery fields still empty, in form order.
type DeliveryIncompleteError struct {
	Missing []string
}

func (e *DeliveryIncompleteError) Error() string {
	return "missing " + strings.Join(e.Missing, ", ")
}

func (e *DeliveryIncompleteError) Is(target error) bool {
	return target == domain.ErrDeliveryIncomplete
}

// Flow is not safe for concurrent use.
type Flow struct {
	step     Step
	delivery domain.DeliveryDetails
	payment  *domain.PaymentMethod
	terms    bool
	placed   bool

	delay time.Duration
	now   func() time.Time
}

type Option func(*Flow)

// WithClock overrides the clock used for order timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// New starts a checkout at the delivery step. delay simulates order processing.
func New(delay time.Duration, opts ...Option) *Flow {
	f := &Flow{
		delivery: domain.DeliveryDetails{City: config.DefaultCity},
		delay:    delay,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Delivery() domain.DeliveryDetails {
	return f.delivery
}

// SetDelivery replaces the delivery form. An empty city keeps the default.
func (f *Flow) SetDelivery(d domain.DeliveryDetails) error {
	if f.step != StepDelivery {
		return fmt.Errorf("set delivery at %s: %w", f.step, domain.ErrWrongStep)
	}
	if strings.TrimSpace(d.City) == "" {
		d.City = config.DefaultCity
	}
	f.delivery = d
	return nil
}

// Missing lists the required delivery fields that are still empty.
func (f *Flow) Missing() []string {
	return MissingDelivery(f.delivery)
}

// MissingDelivery lists the required fields of d that are empty, in form order.
func MissingDelivery(d domain.DeliveryDetails) []string {
	var missing []string
	check := func(v, name string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check(d.FullName, "full name")
	check(d.Phone, "phone")
	check(d.Street, "street")
	check(d.District, "district")
	check(d.DeliveryDate, "delivery date")
	check(d.TimeSlot, "time slot")
	if d.IsGift {
		check(d.Recipient, "recipient name")
	}
	return missing
}

func (f *Flow) Payment() (domain.PaymentMethod, bool) {
	if f.payment == nil {
		return domain.PaymentMethod{}, false
	}
	return *f.payment, true
}

func (f *Flow) SelectPayment(id string) error {
	if f.step != StepPayment {
		return fmt.Errorf("select payment at %s: %w", f.step, domain.ErrWrongStep)
	}
	m, ok := PaymentMethodByID(id)
	if !ok {
		return fmt.Errorf("payment %q: %w", id, domain.ErrUnknownPaymentMethod)
	}
	f.payment = &m
	return nil
}

func (f *Flow) TermsAccepted() bool {
	return f.terms
}

func (f *Flow) AcceptTerms(accepted bool) error {
	if f.step != StepReview {
		return fmt.Errorf("accept terms at %s: %w", f.step, domain.ErrWrongStep)
	}
	f.terms = accepted
	return nil
}

// Next advances one step if the current one is complete.
func (f *Flow) Next() error {
	switch f.step {
	case StepDelivery:
		if missing := f.Missing(); len(missing) > 0 {
			return &DeliveryIncompleteError{Missing: missing}
		}
		f.step = StepPayment
	case StepPayment:
		if f.payment == nil {
			return domain.ErrPaymentNotSelected
		}
		f.step = StepReview
	default:
		return fmt.Errorf("next from %s: %w", f.step, domain.ErrWrongStep)
	}
	return nil
}

// Back goes one step back. It returns false at the delivery step, where going
// back means leaving checkout.
func (f *Flow) Back() bool {
	if f.step == StepDelivery || f.placed {
		return false
	}
	f.step--
	return true
}

func (f *Flow) Placed() bool {
	return f.placed
}

// CanPlace reports why the order cannot be placed yet, or nil.
func (f *Flow) CanPlace() error {
	if f.placed {
		return domain.ErrOrderPlaced
	}
	if f.step != StepReview {
		return fmt.Errorf("place order at %s: %w", f.step, domain.ErrWrongStep)
	}
	if !f.terms {
		return domain.ErrTermsNotAccepted
	}
	return nil
}

// PlaceOrder simulates order processing and returns the confirmed order.
// It waits for the configured delay or until ctx is done.
func (f *Flow) PlaceOrder(ctx context.Context, total decimal.Decimal) (domain.Order, error) {
	if err := f.CanPlace(); err != nil {
		return domain.Order{}, err
	}

	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.Order{}, fmt.Errorf("place order: %w", ctx.Err())
		case <-timer.C:
		}
	}

	now := f.now()
	id, err := NewOrderID(now)
	if err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}
	f.placed = true

	return domain.Order{
		ID:       id,
		Delivery: f.delivery,
		Payment:  *f.payment,
		Total:    total,
		PlacedAt: now,
	}, nil
}
