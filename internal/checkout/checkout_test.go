package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/set-night/giftshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 23, 18, 30, 0, 0, time.UTC)

func validDelivery() domain.DeliveryDetails {
	return domain.DeliveryDetails{
		FullName:     "Sara Ahmed",
		Phone:        "+966500000000",
		Street:       "Tahlia Street",
		District:     "Al Rawdah",
		DeliveryDate: "2025-09-24",
		TimeSlot:     "1:00 PM - 3:00 PM",
	}
}

func toReview(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.SetDelivery(validDelivery()))
	require.NoError(t, f.Next())
	require.NoError(t, f.SelectPayment("apple_pay"))
	require.NoError(t, f.Next())
	require.Equal(t, StepReview, f.Step())
}

func TestNewDefaults(t *testing.T) {
	f := New(0)
	assert.Equal(t, StepDelivery, f.Step())
	assert.Equal(t, "Jeddah", f.Delivery().City)
	_, ok := f.Payment()
	assert.False(t, ok)
}

func TestDeliveryGate(t *testing.T) {
	f := New(0)

	err := f.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeliveryIncomplete)

	var incomplete *DeliveryIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{"full name", "phone", "street", "district", "delivery date", "time slot"}, incomplete.Missing)
	assert.Equal(t, StepDelivery, f.Step())
}

func TestGiftNeedsRecipient(t *testing.T) {
	f := New(0)
	d := validDelivery()
	d.IsGift = true
	require.NoError(t, f.SetDelivery(d))

	assert.Equal(t, []string{"recipient name"}, f.Missing())
	assert.ErrorIs(t, f.Next(), domain.ErrDeliveryIncomplete)

	d.Recipient = "Mona"
	require.NoError(t, f.SetDelivery(d))
	assert.NoError(t, f.Next())
}

func TestBuildingAndInstructionsAreOptional(t *testing.T) {
	assert.Empty(t, MissingDelivery(validDelivery()))
}

func TestSetDeliveryKeepsDefaultCity(t *testing.T) {
	f := New(0)
	require.NoError(t, f.SetDelivery(validDelivery()))
	assert.Equal(t, "Jeddah", f.Delivery().City)
}

func TestPaymentGate(t *testing.T) {
	f := New(0)
	require.NoError(t, f.SetDelivery(validDelivery()))
	require.NoError(t, f.Next())

	assert.ErrorIs(t, f.Next(), domain.ErrPaymentNotSelected)
	assert.ErrorIs(t, f.SelectPayment("bitcoin"), domain.ErrUnknownPaymentMethod)

	require.NoError(t, f.SelectPayment("cash"))
	m, ok := f.Payment()
	require.True(t, ok)
	assert.Equal(t, "Cash on Delivery", m.Name)
	assert.NoError(t, f.Next())
}

func TestActionsOutsideTheirStep(t *testing.T) {
	f := New(0)
	assert.ErrorIs(t, f.SelectPayment("card"), domain.ErrWrongStep)
	assert.ErrorIs(t, f.AcceptTerms(true), domain.ErrWrongStep)

	toReview(t, f)
	assert.ErrorIs(t, f.SetDelivery(validDelivery()), domain.ErrWrongStep)
	assert.ErrorIs(t, f.Next(), domain.ErrWrongStep)
}

func TestBack(t *testing.T) {
	f := New(0)
	toReview(t, f)

	assert.True(t, f.Back())
	assert.Equal(t, StepPayment, f.Step())
	assert.True(t, f.Back())
	assert.Equal(t, StepDelivery, f.Step())
	assert.False(t, f.Back())

	// Going forward again is still gated, and keeps what was entered.
	require.NoError(t, f.Next())
	require.NoError(t, f.Next())
	assert.Equal(t, StepReview, f.Step())
}

func TestPlaceOrder(t *testing.T) {
	f := New(time.Millisecond, WithClock(func() time.Time { return fixedNow }))
	toReview(t, f)

	_, err := f.PlaceOrder(context.Background(), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrTermsNotAccepted)

	require.NoError(t, f.AcceptTerms(true))
	order, err := f.PlaceOrder(context.Background(), decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^LUG-2025-\d{6}$`), order.ID)
	assert.Equal(t, "Apple Pay", order.Payment.Name)
	assert.Equal(t, "Sara Ahmed", order.Delivery.FullName)
	assert.True(t, decimal.NewFromInt(100).Equal(order.Total))
	assert.Equal(t, fixedNow, order.PlacedAt)
	assert.True(t, f.Placed())
	assert.False(t, f.Back())

	_, err = f.PlaceOrder(context.Background(), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrOrderPlaced)
}

func TestPlaceOrderFromWrongStep(t *testing.T) {
	_, err := New(0).PlaceOrder(context.Background(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrWrongStep)
}

func TestPlaceOrderCancelled(t *testing.T) {
	f := New(time.Hour)
	toReview(t, f)
	require.NoError(t, f.AcceptTerms(true))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.PlaceOrder(ctx, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.Placed())
}

func TestReferenceData(t *testing.T) {
	assert.Len(t, TimeSlots(), 6)
	assert.Equal(t, "9:00 AM - 11:00 AM", TimeSlots()[0])
	assert.Len(t, Districts(), 8)
	assert.Contains(t, Districts(), "Corniche")
	assert.Len(t, PaymentMethods(), 3)

	assert.Equal(t, "2025-09-24", EarliestDeliveryDate(fixedNow))
	assert.Equal(t, []string{"2025-09-24", "2025-09-25", "2025-09-26"}, DeliveryDates(fixedNow, 3))
}

func TestNewOrderID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, err := NewOrderID(fixedNow)
		require.NoError(t, err)
		assert.Regexp(t, `^LUG-2025-\d{6}$`, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "delivery", StepDelivery.String())
	assert.Equal(t, "review", StepReview.String())
}
