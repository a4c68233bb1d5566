// Package router tracks which screen a session is on.
package router

import (
	"fmt"

	"github.com/set-night/giftshop/internal/domain"
)

type Screen string

const (
	ScreenGifts             Screen = "gifts"
	ScreenBrowse            Screen = "browse"
	ScreenOrders            Screen = "orders"
	ScreenProfile           Screen = "profile"
	ScreenCart              Screen = "cart"
	ScreenCheckout          Screen = "checkout"
	ScreenOrderConfirmation Screen = "order-confirmation"
	ScreenAuth              Screen = "auth"
)

var screens = []Screen{
	ScreenGifts, ScreenBrowse, ScreenOrders, ScreenProfile,
	ScreenCart, ScreenCheckout, ScreenOrderConfirmation, ScreenAuth,
}

func ParseScreen(s string) (Screen, error) {
	for _, sc := range screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("screen %q: %w", s, domain.ErrUnknownScreen)
}

// RequiresAuth reports whether the screen needs a signed-in user.
func RequiresAuth(s Screen) bool {
	return s == ScreenOrders || s == ScreenProfile
}

// ShowsBottomNav is false on the full-screen flows.
func ShowsBottomNav(s Screen) bool {
	switch s {
	case ScreenCart, ScreenCheckout, ScreenOrderConfirmation, ScreenAuth:
		return false
	}
	return true
}

// Tab is one entry of the bottom navigation bar.
type Tab struct {
	Screen Screen
	Label  string
}

var tabs = []Tab{
	{ScreenBrowse, "Home"},
	{ScreenOrders, "Orders"},
	{ScreenGifts, "Gifts"},
	{ScreenProfile, "Profile"},
}

func Tabs() []Tab {
	return append([]Tab(nil), tabs...)
}

// Router is not safe for concurrent use.
type Router struct {
	current  Screen
	previous Screen
}

func New() *Router {
	return &Router{current: ScreenGifts, previous: ScreenGifts}
}

func (r *Router) Current() Screen {
	return r.current
}

// Previous is the screen shown before the current one.
func (r *Router) Previous() Screen {
	return r.previous
}

// NavigateTo moves to s, or to the auth screen when s needs a user and there is none.
// It returns the screen actually shown.
func (r *Router) NavigateTo(s Screen, signedIn bool) Screen {
	if RequiresAuth(s) && !signedIn {
		s = ScreenAuth
	}
	if s != r.current {
		r.previous = r.current
		r.current = s
	}
	return r.current
}
