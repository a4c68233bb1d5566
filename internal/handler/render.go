package handler

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
	tg "github.com/set-night/giftshop/internal/telegram"
)

// The render functions are pure: they turn session snapshots into message
// text (legacy Markdown) and inline keyboards.

// data builds callback data. Over-long data degrades to a no-op button.
func data(parts ...string) string {
	d, err := tg.CallbackData(parts...)
	if err != nil {
		slog.Warn("callback data too long", "error", err)
		return cbNoop
	}
	return d
}

func price(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + config.Currency
}

func esc(s string) string {
	return tg.EscapeMarkdown(s)
}

// navRow is the bottom navigation bar plus the cart button.
func navRow(current router.Screen, cartCount int) []models.InlineKeyboardButton {
	if !router.ShowsBottomNav(current) {
		return nil
	}
	var row []models.InlineKeyboardButton
	for _, tab := range router.Tabs() {
		label := tab.Label
		if tab.Screen == current {
			label = "• " + label
		}
		row = append(row, tg.InlineButton(label, data(cbNav, string(tab.Screen))))
	}
	cartLabel := "🛒"
	if cartCount > 0 {
		cartLabel = fmt.Sprintf("🛒 %d", cartCount)
	}
	return append(row, tg.InlineButton(cartLabel, data(cbNav, string(router.ScreenCart))))
}

func vendorTabRows(groups []domain.VendorGroup) [][]models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(groups))
	for _, g := range groups {
		buttons = append(buttons, tg.InlineButton("🏪 "+g.Name, data(cbVendor, g.ID, "0")))
	}
	return tg.Grid(buttons, 2)
}

func productRows(products []domain.Product) [][]models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		buttons = append(buttons, tg.InlineButton("🎁 "+p.Name, data(cbProduct, p.ID)))
	}
	return tg.Grid(buttons, 2)
}

func productLine(p domain.Product) string {
	return fmt.Sprintf("• *%s* · %s · ⭐ %.1f\n  _%s_", esc(p.Name), price(p.Price), p.Rating, esc(p.Vendor))
}

// renderWelcome is the empty chat: a greeting and the prompt cards.
func renderWelcome(prompts []domain.Prompt, cartCount int) (string, *models.InlineKeyboardMarkup) {
	text := "👋 *Welcome to Lugmety Gifts!*\n\n" +
		"Tell me who you're shopping for and the occasion, and I'll find the perfect gift. " +
		"Type a message, send /voice followed by what you'd say, or pick an idea below."

	buttons := make([]models.InlineKeyboardButton, 0, len(prompts))
	for _, p := range prompts {
		buttons = append(buttons, tg.InlineButton(p.Title, data(cbPrompt, p.ID)))
	}
	rows := tg.Grid(buttons, 2)
	rows = append(rows, navRow(router.ScreenGifts, cartCount))
	return text, tg.InlineKeyboard(rows...)
}

// renderAssistant renders one assistant chat message with its products,
// suggestions, vendor tabs and quick actions.
func renderAssistant(msg domain.Message, cartCount int) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(esc(msg.Text))
	if len(msg.Products) > 0 {
		sb.WriteString("\n")
		for _, p := range msg.Products {
			sb.WriteString("\n" + productLine(p))
		}
	}

	var rows [][]models.InlineKeyboardButton
	rows = append(rows, productRows(msg.Products)...)
	for _, s := range msg.Suggestions {
		rows = append(rows, tg.ButtonRow(tg.InlineButton("💡 "+s.Label, data(cbSuggestion, s.ID))))
	}
	if len(msg.QuickActions) > 0 {
		var row []models.InlineKeyboardButton
		for _, a := range msg.QuickActions {
			row = append(row, tg.InlineButton(a.Label, data(cbAction, string(a.Action))))
		}
		rows = append(rows, row)
	}
	rows = append(rows, vendorTabRows(msg.VendorGroups)...)
	rows = append(rows, navRow(router.ScreenGifts, cartCount))
	return sb.String(), tg.InlineKeyboard(rows...)
}

// renderUserEcho is shown for inputs the shopper made with a button, so the
// chat reads like the conversation it records.
func renderUserEcho(msg domain.Message) string {
	if msg.Voice {
		return "🎤 _" + esc(msg.Text) + "_"
	}
	return "🗣 _" + esc(msg.Text) + "_"
}

// renderHome is the Home tab: the curated picks and refinement buttons.
func renderHome(picks []domain.Product, refinements []domain.Suggestion, groups []domain.VendorGroup, cartCount int) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("✨ *Our Picks*\n")
	for _, p := range picks {
		sb.WriteString("\n" + productLine(p))
	}

	rows := productRows(picks)
	var refine []models.InlineKeyboardButton
	for _, s := range refinements {
		refine = append(refine, tg.InlineButton(s.Label, data(cbSuggestion, s.ID)))
	}
	rows = append(rows, refine)
	rows = append(rows, vendorTabRows(groups)...)
	rows = append(rows, navRow(router.ScreenBrowse, cartCount))
	return sb.String(), tg.InlineKeyboard(rows...)
}

// renderVendorPage shows one page of a vendor's products.
func renderVendorPage(group domain.VendorGroup, page int) (string, *models.InlineKeyboardMarkup) {
	totalPages := (len(group.Products) + config.ProductsPerPage - 1) / config.ProductsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(0, min(page, totalPages-1))
	start := page * config.ProductsPerPage
	end := min(start+config.ProductsPerPage, len(group.Products))
	products := group.Products[start:end]

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏪 *%s*\n_%s_\n", esc(group.Name), esc(group.Description))
	if len(products) == 0 {
		sb.WriteString("\nNo products available right now.")
	}
	for _, p := range products {
		sb.WriteString("\n" + productLine(p))
	}

	rows := productRows(products)
	rows = append(rows, tg.PaginationRow(page, totalPages, data(cbVendor, group.ID, "p")))
	rows = append(rows, tg.ButtonRow(tg.InlineButton("⬅️ Back to chat", data(cbNav, string(router.ScreenGifts)))))
	return sb.String(), tg.InlineKeyboard(rows...)
}

// renderProduct is the product card.
func renderProduct(p domain.Product) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎁 *%s*\n_%s_\n\n", esc(p.Name), esc(p.Vendor))
	fmt.Fprintf(&sb, "*Price:* %s\n*Rating:* ⭐ %.1f (%d reviews)\n\n%s", price(p.Price), p.Rating, p.ReviewCount, esc(p.Description))
	if len(p.Options) > 0 {
		sb.WriteString("\n\n*Options:*")
		for _, o := range p.Options {
			req := ""
			if o.Required {
				req = " (required)"
			}
			fmt.Fprintf(&sb, "\n• %s%s", esc(o.Name), req)
			if len(o.Choices) > 0 {
				sb.WriteString(": " + esc(strings.Join(o.Choices, ", ")))
			}
		}
	}

	kb := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("➕ Add to cart", data(cbAdd, p.ID))),
		tg.ButtonRow(tg.InlineButton("🏪 More from "+p.Vendor, data(cbVendor, catalog.Slug(p.Vendor), "0"))),
	)
	return sb.String(), kb
}

// renderCustomize is the customization form of the pending item.
func renderCustomize(item service.PendingItem) (string, *models.InlineKeyboardMarkup) {
	p := item.Product

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛠 *Customize %s*\n%s each\n", esc(p.Name), price(p.Price))

	var rows [][]models.InlineKeyboardButton
	for _, o := range p.Options {
		value, set := item.Values[o.ID]
		shown := "—"
		if set {
			shown = esc(value.String())
		}
		req := ""
		if o.Required {
			req = "*"
		}
		fmt.Fprintf(&sb, "\n%s%s: %s", esc(o.Name), req, shown)

		if o.Type == domain.OptionSelect {
			buttons := make([]models.InlineKeyboardButton, 0, len(o.Choices))
			for i, c := range o.Choices {
				label := c
				if set && value.Text == c {
					label = "✅ " + c
				}
				buttons = append(buttons, tg.InlineButton(label, data(cbCustomize, "opt", o.ID, strconv.Itoa(i))))
			}
			rows = append(rows, tg.Grid(buttons, 3)...)
			continue
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton("✏️ "+o.Name, data(cbCustomize, "text", o.ID))))
	}

	fmt.Fprintf(&sb, "\n\n*Quantity:* %d\n*Line total:* %s", item.Quantity,
		price(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))

	rows = append(rows,
		tg.ButtonRow(
			tg.InlineButton("➖", data(cbCustomize, "qty", "-1")),
			tg.InlineButton(strconv.Itoa(item.Quantity), cbNoop),
			tg.InlineButton("➕", data(cbCustomize, "qty", "1")),
		),
		tg.ButtonRow(
			tg.InlineButton("✅ Add to cart", data(cbCustomize, "ok")),
			tg.InlineButton("✖️ Cancel", data(cbCustomize, "cancel")),
		),
	)
	return sb.String(), tg.InlineKeyboard(rows...)
}

func renderTotals(t domain.Totals) string {
	delivery := price(t.DeliveryFee)
	if t.DeliveryFee.IsZero() && !t.Subtotal.IsZero() {
		delivery = "Free"
	}
	return fmt.Sprintf("Subtotal: %s\nDelivery: %s\nService fee: %s\nTax (15%%): %s\n*Total: %s*",
		price(t.Subtotal), delivery, price(t.ServiceFee), price(t.Tax), price(t.Total))
}

func lineItemText(it domain.LineItem) string {
	s := fmt.Sprintf("*%s* × %d · %s", esc(it.Name), it.Quantity, price(it.LineTotal()))
	if len(it.Customizations) > 0 {
		keys := make([]string, 0, len(it.Customizations))
		for k := range it.Customizations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, esc(it.Customizations[k].String()))
		}
		s += "\n  _" + strings.Join(parts, ", ") + "_"
	}
	return s
}

// renderCart is the cart screen.
func renderCart(v service.CartView) (string, *models.InlineKeyboardMarkup) {
	if v.Empty() {
		return "🛒 *Your cart is empty.*\n\nAsk me for gift ideas to get started!",
			tg.InlineKeyboard(tg.ButtonRow(
				tg.InlineButton("🛍 Continue shopping", data(cbAction, string(domain.ActionContinueShopping))),
			))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 *Your cart* (%d items)\n🏪 %s\n", v.Count, esc(v.Vendor))

	var rows [][]models.InlineKeyboardButton
	for _, it := range v.Items {
		sb.WriteString("\n" + lineItemText(it))
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton("➖", data(cbCart, "dec", it.ID)),
			tg.InlineButton(fmt.Sprintf("%s × %d", it.Name, it.Quantity), cbNoop),
			tg.InlineButton("➕", data(cbCart, "inc", it.ID)),
			tg.InlineButton("🗑", data(cbCart, "rm", it.ID)),
		))
	}
	sb.WriteString("\n\n" + renderTotals(v.Totals))

	rows = append(rows,
		tg.ButtonRow(
			tg.InlineButton("🧹 Clear cart", data(cbCart, "clear")),
			tg.InlineButton("✖️ Close", data(cbCart, "close")),
		),
		tg.ButtonRow(tg.InlineButton(fmt.Sprintf("💳 Checkout (%d)", v.Count), data(cbCart, "checkout"))),
	)
	return sb.String(), tg.InlineKeyboard(rows...)
}

// deliveryFields are the free-text fields of the delivery form, in form order.
var deliveryFields = []struct {
	key   string
	label string
	gift  bool
}{
	{"name", "Full name", false},
	{"phone", "Phone", false},
	{"street", "Street", false},
	{"building", "Building", false},
	{"instructions", "Instructions", false},
	{"recipient", "Recipient name", true},
	{"giftmsg", "Gift message", true},
}

func deliveryValue(d domain.DeliveryDetails, key string) string {
	switch key {
	case "name":
		return d.FullName
	case "phone":
		return d.Phone
	case "street":
		return d.Street
	case "building":
		return d.Building
	case "instructions":
		return d.Instructions
	case "recipient":
		return d.Recipient
	case "giftmsg":
		return d.GiftMessage
	}
	return ""
}

// setDeliveryValue stores a free-text answer. It reports false for unknown keys.
func setDeliveryValue(d *domain.DeliveryDetails, key, value string) bool {
	switch key {
	case "name":
		d.FullName = value
	case "phone":
		d.Phone = value
	case "street":
		d.Street = value
	case "building":
		d.Building = value
	case "instructions":
		d.Instructions = value
	case "recipient":
		d.Recipient = value
	case "giftmsg":
		d.GiftMessage = value
	default:
		return false
	}
	return true
}

func fieldLabel(key string) string {
	for _, f := range deliveryFields {
		if f.key == key {
			return f.label
		}
	}
	return key
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return esc(s)
}

func stepHeader(step checkout.Step) string {
	labels := []string{"Delivery", "Payment", "Review"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if checkout.Step(i) == step {
			parts[i] = "*" + l + "*"
		} else {
			parts[i] = l
		}
	}
	return "💳 Checkout: " + strings.Join(parts, " › ")
}

// renderCheckout renders the current checkout step.
func renderCheckout(v service.CheckoutView) (string, *models.InlineKeyboardMarkup) {
	switch v.Step {
	case checkout.StepPayment:
		return renderPaymentStep(v)
	case checkout.StepReview:
		return renderReviewStep(v)
	}
	return renderDeliveryStep(v)
}

func deliverySummary(d domain.DeliveryDetails) string {
	var sb strings.Builder
	for _, f := range deliveryFields {
		if f.gift && !d.IsGift {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.label, orDash(deliveryValue(d, f.key)))
	}
	fmt.Fprintf(&sb, "District: %s\nCity: %s\nDate: %s\nTime: %s",
		orDash(d.District), orDash(d.City), orDash(d.DeliveryDate), orDash(d.TimeSlot))
	return sb.String()
}

func renderDeliveryStep(v service.CheckoutView) (string, *models.InlineKeyboardMarkup) {
	d := v.Delivery

	var sb strings.Builder
	sb.WriteString(stepHeader(checkout.StepDelivery) + "\n\n📍 *Delivery details*\n")
	sb.WriteString(deliverySummary(d))
	if d.IsGift {
		sb.WriteString("\n🎁 Sending as a gift")
	}
	if len(v.Missing) > 0 {
		sb.WriteString("\n\n_Still needed: " + esc(strings.Join(v.Missing, ", ")) + "_")
	}

	var fieldButtons []models.InlineKeyboardButton
	for _, f := range deliveryFields {
		if f.gift && !d.IsGift {
			continue
		}
		fieldButtons = append(fieldButtons, tg.InlineButton("✏️ "+f.label, data(cbCheckout, "field", f.key)))
	}
	rows := tg.Grid(fieldButtons, 2)

	gift := "🎁 Send as gift"
	if d.IsGift {
		gift = "✅ Send as gift"
	}
	rows = append(rows,
		tg.ButtonRow(
			tg.InlineButton("📍 District", data(cbCheckout, "pick", "district")),
			tg.InlineButton("📅 Date", data(cbCheckout, "pick", "date")),
			tg.InlineButton("🕐 Time", data(cbCheckout, "pick", "slot")),
		),
		tg.ButtonRow(tg.InlineButton(gift, data(cbCheckout, "gift"))),
		tg.ButtonRow(
			tg.InlineButton("⬅️ Back", data(cbCheckout, "back")),
			tg.InlineButton("Continue ➡️", data(cbCheckout, "next")),
		),
	)
	return sb.String(), tg.InlineKeyboard(rows...)
}

// renderPicker lists choices for a delivery field chosen from a fixed set.
// values are the callback arguments of the choices, parallel to labels.
func renderPicker(title, kind string, labels, values []string, selected string) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, len(labels))
	for i, l := range labels {
		label := l
		if l == selected {
			label = "✅ " + l
		}
		buttons = append(buttons, tg.InlineButton(label, data(cbCheckout, kind, values[i])))
	}
	rows := tg.Grid(buttons, 2)
	rows = append(rows, tg.ButtonRow(tg.InlineButton("⬅️ Back", data(cbCheckout, "show"))))
	return "💳 *" + esc(title) + "*", tg.InlineKeyboard(rows...)
}

func renderPaymentStep(v service.CheckoutView) (string, *models.InlineKeyboardMarkup) {
	text := stepHeader(checkout.StepPayment) + "\n\n💳 *Payment method*\n\nHow would you like to pay?"

	var rows [][]models.InlineKeyboardButton
	for _, m := range checkout.PaymentMethods() {
		label := m.Name
		if v.Payment != nil && v.Payment.ID == m.ID {
			label = "✅ " + m.Name
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(label, data(cbCheckout, "pay", m.ID))))
	}
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton("⬅️ Back", data(cbCheckout, "back")),
		tg.InlineButton("Continue ➡️", data(cbCheckout, "next")),
	))
	return text, tg.InlineKeyboard(rows...)
}

func renderReviewStep(v service.CheckoutView) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(stepHeader(checkout.StepReview) + "\n\n📋 *Review your order*\n\n")
	sb.WriteString("*Deliver to*\n" + deliverySummary(v.Delivery) + "\n\n")
	if v.Payment != nil {
		sb.WriteString("*Payment:* " + esc(v.Payment.Name) + "\n\n")
	}
	fmt.Fprintf(&sb, "*Items* from %s\n", esc(v.Cart.Vendor))
	for _, it := range v.Cart.Items {
		sb.WriteString(lineItemText(it) + "\n")
	}
	sb.WriteString("\n" + renderTotals(v.Cart.Totals))
	sb.WriteString("\n\n🚚 Estimated delivery: " + config.EstimatedDeliveryMsg)

	terms := "☐ I accept the terms and conditions"
	if v.Terms {
		terms = "☑️ I accept the terms and conditions"
	}
	kb := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton(terms, data(cbCheckout, "terms"))),
		tg.ButtonRow(
			tg.InlineButton("⬅️ Back", data(cbCheckout, "back")),
			tg.InlineButton("🎁 Place order", data(cbCheckout, "place")),
		),
	)
	return sb.String(), kb
}

// renderConfirmation is shown once an order is placed.
func renderConfirmation(o domain.Order) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🎉 *Order placed!*\n\nOrder ID: `%s`\nTotal: %s\nPayment: %s\n🚚 Estimated delivery: %s\n\nThank you for shopping with us!",
		o.ID, price(o.Total), esc(o.Payment.Name), config.EstimatedDeliveryMsg)
	kb := tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🛍 Continue shopping", data(cbNav, string(router.ScreenGifts))),
		tg.InlineButton("📦 My orders", data(cbNav, string(router.ScreenOrders))),
	))
	return text, kb
}

func renderOrders(orders []domain.Order, cartCount int) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📦 *Your orders*\n")
	if len(orders) == 0 {
		sb.WriteString("\nNo orders yet.")
	}
	for _, o := range orders {
		fmt.Fprintf(&sb, "\n`%s` · %s · %d items\n  _%s_", o.ID, price(o.Total), len(o.Items), o.PlacedAt.Format("2006-01-02 15:04"))
	}
	return sb.String(), tg.InlineKeyboard(navRow(router.ScreenOrders, cartCount))
}

func renderProfile(u domain.User, orderCount, cartCount int) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("👤 *%s*\n%s\n\nOrders placed: %d", esc(u.Name), esc(u.Email), orderCount)
	kb := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("🚪 Sign out", data(cbAuth, "signout"))),
		navRow(router.ScreenProfile, cartCount),
	)
	return text, kb
}

// renderAuth is the sign-in screen in one of its three modes.
func renderAuth(mode string) (string, *models.InlineKeyboardMarkup) {
	var text string
	var rows [][]models.InlineKeyboardButton
	switch mode {
	case "signup":
		text = "📝 *Create an account*\n\nWe'll ask for your name, email and a password."
		rows = append(rows,
			tg.ButtonRow(tg.InlineButton("✉️ Sign up with email", data(cbAuth, "start", "signup"))),
			tg.ButtonRow(tg.InlineButton("Already have an account? Sign in", data(cbAuth, "mode", "signin"))),
		)
	case "forgot":
		text = "🔑 *Reset your password*\n\nWe'll send a reset link to your email."
		rows = append(rows,
			tg.ButtonRow(tg.InlineButton("✉️ Send reset link", data(cbAuth, "start", "forgot"))),
			tg.ButtonRow(tg.InlineButton("⬅️ Back to sign in", data(cbAuth, "mode", "signin"))),
		)
	default:
		text = "🔐 *Sign in*\n\nSign in to see your orders and profile."
		rows = append(rows,
			tg.ButtonRow(tg.InlineButton("✉️ Sign in with email", data(cbAuth, "start", "signin"))),
			tg.ButtonRow(
				tg.InlineButton("Create account", data(cbAuth, "mode", "signup")),
				tg.InlineButton("Forgot password?", data(cbAuth, "mode", "forgot")),
			),
		)
	}
	rows = append(rows,
		tg.ButtonRow(
			tg.InlineButton("Continue with Google", data(cbAuth, "social", "google")),
			tg.InlineButton("Continue with Apple", data(cbAuth, "social", "apple")),
		),
		tg.ButtonRow(tg.InlineButton("✖️ Close", data(cbNav, string(router.ScreenGifts)))),
	)
	return text, tg.InlineKeyboard(rows...)
}
