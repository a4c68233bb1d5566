package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/service"
)

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer) {
	t.Helper()
	shop := &config.Shop{DemoEmail: "demo@lugmety.com", DemoPassword: "demo123"}
	cat := catalog.MustLoad()
	store := service.NewSessionStore(shop, cat, conversation.New(cat), auth.New(shop))
	sess, _ := store.FindOrCreate(consoleChatID)

	var out bytes.Buffer
	return newREPL(sess, cat, service.NewPacer(0), &out), &out
}

func run(t *testing.T, r *repl, out *bytes.Buffer, lines ...string) string {
	t.Helper()
	out.Reset()
	for _, l := range lines {
		require.False(t, r.exec(context.Background(), l))
	}
	return out.String()
}

func TestREPLAsk(t *testing.T) {
	r, out := newTestREPL(t)

	got := run(t, r, out, "birthday gift for my sister")
	assert.Contains(t, got, "assistant: ")
	assert.Contains(t, got, ":click")

	got = run(t, r, out, ":voice flowers please")
	assert.Contains(t, got, "(voice) flowers please")

	got = run(t, r, out, ":click no-such-suggestion")
	assert.Contains(t, got, "! ")
}

func TestREPLCheckout(t *testing.T) {
	r, out := newTestREPL(t)

	got := run(t, r, out, ":add 1 message=Happy birthday")
	assert.Contains(t, got, "Size is required")
	assert.True(t, r.sess.Cart().Empty())

	got = run(t, r, out, ":add 1 size=large message=Happy birthday qty=2")
	assert.Contains(t, got, "Great! I've added Premium Flower Bouquet")
	assert.Equal(t, 2, r.sess.Cart().Count)

	got = run(t, r, out, ":add 3 flavor=Assorted")
	assert.Contains(t, got, "cannot add from Sweet Delights")

	got = run(t, r, out, ":checkout", ":next")
	assert.Contains(t, got, "please fill in: full name")

	got = run(t, r, out,
		":set name Sara Ahmed",
		":set phone 0500000000",
		":set street King Road",
		":set district 2",
		":set date 2030-01-02",
		":set slot 1",
		":next",
		":pay cash",
		":next",
		":place",
	)
	assert.Contains(t, got, "terms")

	got = run(t, r, out, ":terms", ":place")
	assert.Contains(t, got, "Order placed! LUG-")
	assert.True(t, r.sess.Cart().Empty())

	got = run(t, r, out, ":orders")
	assert.Contains(t, got, "Sign in first")

	got = run(t, r, out, ":signin demo@lugmety.com demo123", ":orders")
	assert.Contains(t, got, "Welcome, Demo User!")
	assert.Equal(t, 1, strings.Count(got, "LUG-"))
}

func TestREPLQuit(t *testing.T) {
	r, _ := newTestREPL(t)
	assert.True(t, r.exec(context.Background(), ":quit"))
	assert.False(t, r.exec(context.Background(), "   "))
}

func TestParseOptions(t *testing.T) {
	got := parseOptions(strings.Fields("size=Large message=Happy birthday mom qty=2 stray"))
	assert.Equal(t, map[string]string{
		"size":    "Large",
		"message": "Happy birthday mom",
		"qty":     "2 stray",
	}, got)
}

func TestPick(t *testing.T) {
	v, err := pick([]string{"Al Hamra", "Corniche"}, "2")
	require.NoError(t, err)
	assert.Equal(t, "Corniche", v)

	v, err = pick([]string{"Al Hamra", "Corniche"}, "al hamra")
	require.NoError(t, err)
	assert.Equal(t, "Al Hamra", v)

	_, err = pick([]string{"Al Hamra"}, "Mars")
	assert.Error(t, err)
}
