package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + config.Currency
}

func (r *repl) printPrompts() {
	for _, p := range r.cat.Prompts() {
		fmt.Fprintf(r.out, "  :prompt %-14s %s\n", p.ID, p.Title)
	}
}

func (r *repl) printMessage(msg domain.Message) {
	fmt.Fprintf(r.out, "assistant: %s\n", msg.Text)
	for _, p := range msg.Products {
		fmt.Fprintf(r.out, "  [%s] %s  %s  ★%.1f  (%s)\n", p.ID, p.Name, money(p.Price), p.Rating, p.Vendor)
	}
	for _, s := range msg.Suggestions {
		fmt.Fprintf(r.out, "  :click %-22s %s\n", s.ID, s.Label)
	}
	for _, a := range msg.QuickActions {
		cmd := ":continue"
		if a.Action != domain.ActionContinueShopping {
			cmd = ":cart"
		}
		fmt.Fprintf(r.out, "  %-29s %s\n", cmd, a.Label)
	}
	if len(msg.VendorGroups) > 0 {
		names := make([]string, 0, len(msg.VendorGroups))
		for _, g := range msg.VendorGroups {
			names = append(names, fmt.Sprintf("%s (%d)", g.Name, len(g.Products)))
		}
		fmt.Fprintf(r.out, "  vendors: %s\n", strings.Join(names, ", "))
	}
}

func (r *repl) printCart() {
	v := r.sess.Cart()
	if v.Empty() {
		fmt.Fprintln(r.out, "Your cart is empty.")
		return
	}
	fmt.Fprintf(r.out, "Cart from %s (%d items)\n", v.Vendor, v.Count)
	for i, it := range v.Items {
		fmt.Fprintf(r.out, "  %d. %s x%d  %s%s\n", i+1, it.Name, it.Quantity, money(it.LineTotal()), options(it.Customizations))
	}
	printTotals(r, v.Totals)
}

func options(values map[string]domain.OptionValue) string {
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+values[k].String())
	}
	return "  [" + strings.Join(parts, ", ") + "]"
}

func printTotals(r *repl, t domain.Totals) {
	delivery := money(t.DeliveryFee)
	if t.DeliveryFee.IsZero() {
		delivery = "Free"
	}
	fmt.Fprintf(r.out, "  Subtotal %s | Delivery %s | Service %s | Tax %s | Total %s\n",
		money(t.Subtotal), delivery, money(t.ServiceFee), money(t.Tax), money(t.Total))
}

func (r *repl) printCheckout() {
	v, err := r.sess.Checkout()
	if err != nil {
		fmt.Fprintf(r.out, "! %s\n", err)
		return
	}
	fmt.Fprintf(r.out, "Checkout step: %s\n", v.Step)
	switch v.Step {
	case checkout.StepDelivery:
		d := v.Delivery
		fmt.Fprintf(r.out, "  name=%q phone=%q street=%q building=%q\n", d.FullName, d.Phone, d.Street, d.Building)
		fmt.Fprintf(r.out, "  district=%q city=%q date=%q slot=%q gift=%t\n", d.District, d.City, d.DeliveryDate, d.TimeSlot, d.IsGift)
		if len(v.Missing) > 0 {
			fmt.Fprintf(r.out, "  missing: %s\n", strings.Join(v.Missing, ", "))
		}
	case checkout.StepPayment:
		for _, m := range checkout.PaymentMethods() {
			mark := " "
			if v.Payment != nil && v.Payment.ID == m.ID {
				mark = "*"
			}
			fmt.Fprintf(r.out, "  %s %-10s %s\n", mark, m.ID, m.Name)
		}
	case checkout.StepReview:
		if v.Payment != nil {
			fmt.Fprintf(r.out, "  payment: %s\n", v.Payment.Name)
		}
		fmt.Fprintf(r.out, "  deliver to %s, %s, %s on %s %s\n",
			v.Delivery.FullName, v.Delivery.District, v.Delivery.City, v.Delivery.DeliveryDate, v.Delivery.TimeSlot)
		printTotals(r, v.Cart.Totals)
		fmt.Fprintf(r.out, "  terms accepted: %t\n", v.Terms)
	}
}

func (r *repl) printOrder(o domain.Order) {
	fmt.Fprintf(r.out, "Order placed! %s  total %s  paid by %s\n", o.ID, money(o.Total), o.Payment.Name)
	fmt.Fprintf(r.out, "Estimated delivery: %s\n", config.EstimatedDeliveryMsg)
}

func (r *repl) printOrders() {
	if r.sess.Navigate(router.ScreenOrders) == router.ScreenAuth {
		fmt.Fprintln(r.out, "Sign in first: :signin <email> <password>")
		return
	}
	orders := r.sess.Orders()
	if len(orders) == 0 {
		fmt.Fprintln(r.out, "No orders yet.")
	}
	for _, o := range orders {
		fmt.Fprintf(r.out, "  %s  %s  %d items\n", o.ID, money(o.Total), len(o.Items))
	}
}
