package router

import (
	"testing"

	"github.com/set-night/giftshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateGuard(t *testing.T) {
	tests := []struct {
		to       Screen
		signedIn bool
		want     Screen
	}{
		{ScreenOrders, false, ScreenAuth},
		{ScreenProfile, false, ScreenAuth},
		{ScreenOrders, true, ScreenOrders},
		{ScreenProfile, true, ScreenProfile},
		{ScreenBrowse, false, ScreenBrowse},
		{ScreenCart, false, ScreenCart},
		{ScreenCheckout, false, ScreenCheckout},
	}
	for _, tt := range tests {
		t.Run(string(tt.to), func(t *testing.T) {
			r := New()
			assert.Equal(t, tt.want, r.NavigateTo(tt.to, tt.signedIn))
			assert.Equal(t, tt.want, r.Current())
		})
	}
}

func TestPrevious(t *testing.T) {
	r := New()
	assert.Equal(t, ScreenGifts, r.Current())

	r.NavigateTo(ScreenCart, false)
	r.NavigateTo(ScreenCheckout, false)
	assert.Equal(t, ScreenCart, r.Previous())

	r.NavigateTo(ScreenCheckout, false)
	assert.Equal(t, ScreenCart, r.Previous(), "staying put keeps previous")
}

func TestShowsBottomNav(t *testing.T) {
	hidden := []Screen{ScreenCart, ScreenCheckout, ScreenOrderConfirmation, ScreenAuth}
	shown := []Screen{ScreenGifts, ScreenBrowse, ScreenOrders, ScreenProfile}

	for _, s := range hidden {
		assert.False(t, ShowsBottomNav(s), s)
	}
	for _, s := range shown {
		assert.True(t, ShowsBottomNav(s), s)
	}
}

func TestParseScreen(t *testing.T) {
	s, err := ParseScreen("order-confirmation")
	require.NoError(t, err)
	assert.Equal(t, ScreenOrderConfirmation, s)

	_, err = ParseScreen("settings")
	assert.ErrorIs(t, err, domain.ErrUnknownScreen)
}

func TestTabs(t *testing.T) {
	tabs := Tabs()
	require.Len(t, tabs, 4)
	for _, tab := range tabs {
		assert.True(t, ShowsBottomNav(tab.Screen))
	}
}
