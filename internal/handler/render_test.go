package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.CallbackData)
		}
	}
	return out
}

func TestButtonsKeepTheirData(t *testing.T) {
	cat := catalog.MustLoad()

	_, kb := renderWelcome(cat.Prompts(), 0)
	assert.NotContains(t, callbacks(kb), cbNoop)

	for _, p := range cat.Products() {
		_, kb = renderProduct(p)
		assert.Equal(t, []string{"add:" + p.ID, "vt:" + catalog.Slug(p.Vendor) + ":0"}, callbacks(kb))

		_, kb = renderCustomize(service.PendingItem{Product: p, Quantity: 1})
		noops := 0
		for _, d := range callbacks(kb) {
			if d == cbNoop {
				noops++
			}
		}
		assert.Equal(t, 1, noops, "only the quantity display is inert")
	}
}

func TestNavRow(t *testing.T) {
	row := navRow(router.ScreenGifts, 3)
	require.Len(t, row, 5)
	assert.Equal(t, "• Gifts", row[2].Text)
	assert.Equal(t, "🛒 3", row[4].Text)
	assert.Equal(t, "nav:cart", row[4].CallbackData)

	assert.Nil(t, navRow(router.ScreenCheckout, 3), "checkout hides the bottom bar")
}

func TestRenderAssistant(t *testing.T) {
	cat := catalog.MustLoad()
	p, err := cat.Product("1")
	require.NoError(t, err)

	msg := domain.Message{
		Text:         "Perfect for a birthday!",
		Products:     []domain.Product{p},
		Suggestions:  []domain.Suggestion{{ID: "birthday-flowers", Label: "Birthday flowers"}},
		VendorGroups: cat.VendorGroups(),
	}
	text, kb := renderAssistant(msg, 0)

	assert.Contains(t, text, "Perfect for a birthday!")
	assert.Contains(t, text, "Premium Flower Bouquet")
	assert.Contains(t, text, "199.00 SAR")

	data := callbacks(kb)
	assert.Contains(t, data, "pd:1")
	assert.Contains(t, data, "sg:birthday-flowers")
	assert.Contains(t, data, "vt:jeddah-flowers:0")
}

func TestRenderPostCartActions(t *testing.T) {
	msg := domain.Message{
		Text: "Great!",
		QuickActions: []domain.QuickAction{
			{ID: "continue", Label: "Continue Shopping", Action: domain.ActionContinueShopping},
			{ID: "checkout", Label: "Checkout Now (1)", Action: domain.ActionViewCart},
		},
	}
	_, kb := renderAssistant(msg, 1)
	data := callbacks(kb)
	assert.Contains(t, data, "qa:continue_shopping")
	assert.Contains(t, data, "qa:view_cart")
}

func TestRenderVendorPagination(t *testing.T) {
	group := domain.VendorGroup{ID: "shop", Name: "Shop", Description: "d"}
	for i := 0; i < 6; i++ {
		group.Products = append(group.Products, domain.Product{ID: string(rune('a' + i)), Name: "P", Price: decimal.NewFromInt(10)})
	}

	_, kb := renderVendorPage(group, 0)
	data := callbacks(kb)
	assert.Contains(t, data, "vt:shop:p:1")
	assert.Contains(t, data, "pd:d")
	assert.NotContains(t, data, "pd:e")

	_, kb = renderVendorPage(group, 9)
	data = callbacks(kb)
	assert.Contains(t, data, "pd:e", "out of range pages clamp to the last one")
	assert.Contains(t, data, "vt:shop:p:0")
}

func TestRenderCart(t *testing.T) {
	text, kb := renderCart(service.CartView{})
	assert.Contains(t, text, "empty")
	assert.Equal(t, []string{"qa:continue_shopping"}, callbacks(kb))

	c := cart.New(cart.DefaultPricing())
	cat := catalog.MustLoad()
	p, err := cat.Product("3")
	require.NoError(t, err)
	item, err := c.Add(p, domain.Customizations{Quantity: 2, Options: map[string]domain.OptionValue{
		"flavor": {Type: domain.OptionSelect, Text: "Assorted"},
	}})
	require.NoError(t, err)

	view := service.CartView{Vendor: c.Vendor(), Items: c.Items(), Count: c.Count(), Totals: c.Totals()}
	text, kb = renderCart(view)
	assert.Contains(t, text, "Luxury Chocolate Box")
	assert.Contains(t, text, "Assorted")
	assert.Contains(t, text, "Delivery: Free")
	assert.Contains(t, text, "*Total: 347.70 SAR*")

	data := callbacks(kb)
	assert.Contains(t, data, "ct:inc:"+item.ID)
	assert.Contains(t, data, "ct:rm:"+item.ID)
	assert.Contains(t, data, "ct:checkout")
}

func TestRenderCheckoutSteps(t *testing.T) {
	view := service.CheckoutView{
		Step:     checkout.StepDelivery,
		Delivery: domain.DeliveryDetails{City: "Jeddah"},
		Missing:  []string{"full name", "phone"},
	}
	text, kb := renderCheckout(view)
	assert.Contains(t, text, "Still needed: full name, phone")
	data := callbacks(kb)
	assert.Contains(t, data, "co:field:name")
	assert.NotContains(t, data, "co:field:recipient")
	assert.Contains(t, data, "co:pick:district")

	view.Delivery.IsGift = true
	_, kb = renderCheckout(view)
	assert.Contains(t, callbacks(kb), "co:field:recipient")

	view.Step = checkout.StepPayment
	view.Payment = &domain.PaymentMethod{ID: "cash", Name: "Cash on Delivery"}
	text, kb = renderCheckout(view)
	assert.Contains(t, text, "Payment method")
	assert.Contains(t, kb.InlineKeyboard[2][0].Text, "✅")

	view.Step = checkout.StepReview
	text, kb = renderCheckout(view)
	assert.Contains(t, text, "Cash on Delivery")
	assert.Contains(t, callbacks(kb), "co:place")
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[0][0].Text, "☐"))
}

func TestRenderPicker(t *testing.T) {
	dates := checkout.DeliveryDates(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), 2)
	_, kb := renderPicker("Choose a delivery date", "date", dates, dates, "2025-05-03")
	assert.Equal(t, []string{"co:date:2025-05-02", "co:date:2025-05-03", "co:show"}, callbacks(kb))
	assert.Equal(t, "✅ 2025-05-03", kb.InlineKeyboard[0][1].Text)
}

func TestRenderConfirmation(t *testing.T) {
	text, _ := renderConfirmation(domain.Order{ID: "LUG-2025-123456", Total: decimal.NewFromInt(135)})
	assert.Contains(t, text, "LUG-2025-123456")
	assert.Contains(t, text, "135.00 SAR")
}

func TestRenderAuthModes(t *testing.T) {
	for _, mode := range []string{"signin", "signup", "forgot"} {
		t.Run(mode, func(t *testing.T) {
			_, kb := renderAuth(mode)
			data := callbacks(kb)
			assert.Contains(t, data, "au:start:"+mode)
			assert.Contains(t, data, "au:social:google")
		})
	}
}

func TestDeliveryFields(t *testing.T) {
	var d domain.DeliveryDetails
	for _, f := range deliveryFields {
		require.True(t, setDeliveryValue(&d, f.key, "v-"+f.key))
		assert.Equal(t, "v-"+f.key, deliveryValue(d, f.key))
	}
	assert.False(t, setDeliveryValue(&d, "nope", "x"))

	setPicked(&d, "district", "1")
	assert.Equal(t, checkout.Districts()[1], d.District)
	setPicked(&d, "slot", "99")
	assert.Empty(t, d.TimeSlot)
	setPicked(&d, "date", "not-a-date")
	assert.Empty(t, d.DeliveryDate)
	setPicked(&d, "date", "2025-05-02")
	assert.Equal(t, "2025-05-02", d.DeliveryDate)
}
