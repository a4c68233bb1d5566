package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 23, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	n := 0
	return New(catalog.MustLoad(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("m%d", n)
		}),
	)
}

func TestRespondTyped(t *testing.T) {
	e := newEngine(t)
	ctx := NewContext()

	next, reply, err := e.Respond(ctx, Typed("  birthday gift for my sister "), "")
	require.NoError(t, err)

	assert.Equal(t, CategoryBirthday, reply.Category)
	assert.Equal(t, "birthday gift for my sister", reply.User.Text)
	assert.Equal(t, domain.RoleUser, reply.User.Role)
	assert.False(t, reply.User.Voice)
	assert.Equal(t, fixedNow, reply.User.Timestamp)

	a := reply.Assistant
	assert.Equal(t, domain.RoleAssistant, a.Role)
	assert.Equal(t, "Perfect! Here are some wonderful birthday gift options:", a.Text)
	assert.Equal(t, "birthday", a.SearchContext)
	assert.Equal(t, []string{"birthday-age-specific", "birthday-surprise", "birthday-themed"}, ids(a.Suggestions))
	assert.Len(t, a.VendorGroups, 4)
	assert.Equal(t, []string{"3", "4", "5", "6", "7", "8"}, productIDs(a.Products))

	assert.Equal(t, 0, next.Depth)
	assert.Equal(t, 1, next.InteractionCount)
	assert.Equal(t, []string{"birthday gift for my sister"}, next.SearchQueries)
	assert.Equal(t, CategoryBirthday, next.LastCategory)
	assert.Equal(t, []string{"3", "4", "5", "6", "7", "8"}, next.ShownProducts)
	assert.True(t, next.DiscoveryPhase)

	assert.Empty(t, ctx.SearchQueries, "input context must not change")
}

func TestRespondRejectsEmpty(t *testing.T) {
	e := newEngine(t)
	ctx := NewContext()

	for _, in := range []Input{Typed(""), Typed("   \n"), Voice(" "), FromPrompt("")} {
		next, _, err := e.Respond(ctx, in, "")
		assert.ErrorIs(t, err, domain.ErrEmptyUtterance)
		assert.Equal(t, ctx, next)
	}
}

func TestSuggestionClickDeepensConversation(t *testing.T) {
	e := newEngine(t)
	ctx, _, err := e.Respond(NewContext(), Typed("birthday"), "")
	require.NoError(t, err)

	ctx, reply, err := e.Respond(ctx, Click("birthday-surprise"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, ctx.Depth)
	assert.Equal(t, []string{"birthday-surprise"}, ctx.ClickedSuggestions)
	assert.Equal(t, "Birthday surprise gift packages", reply.User.Text)
	assert.True(t, ctx.DiscoveryPhase)
	assert.False(t, ctx.FirstButtonClicked)
	assert.Equal(t, 2, ctx.InteractionCount)
	assert.Empty(t, ctx.Preferences)

	assert.Equal(t,
		[]string{"birthday-experience", "birthday-luxury", "birthday-custom"},
		ids(reply.Assistant.Suggestions),
	)
	assert.NotContains(t, ids(reply.Assistant.Suggestions), "birthday-surprise")

	_, _, err = e.Respond(ctx, Click("birthday-surprise"), "")
	assert.ErrorIs(t, err, domain.ErrSuggestionUsed)
}

func TestTypedResetsDepth(t *testing.T) {
	e := newEngine(t)
	ctx, _, err := e.Respond(NewContext(), Click("birthday-themed"), "")
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Depth)

	ctx, _, err = e.Respond(ctx, Typed("anything else?"), "")
	require.NoError(t, err)
	assert.Equal(t, 0, ctx.Depth)
}

func TestMainCategoryEndsDiscovery(t *testing.T) {
	e := newEngine(t)
	ctx, reply, err := e.Respond(NewContext(), Click("trending-now"), "")
	require.NoError(t, err)

	assert.Equal(t, CategoryTrending, reply.Category)
	assert.False(t, ctx.DiscoveryPhase)
	assert.True(t, ctx.FirstButtonClicked)
	assert.Empty(t, reply.Assistant.Suggestions)
	assert.Equal(t, []string{"4", "7", "1", "8", "2", "3"}, productIDs(reply.Assistant.Products))

	for _, in := range []Input{Typed("birthday"), Click("birthday-surprise"), Voice("flowers")} {
		ctx, reply, err = e.Respond(ctx, in, "")
		require.NoError(t, err)
		assert.False(t, ctx.DiscoveryPhase)
		assert.Empty(t, reply.Assistant.Suggestions)
	}
}

func TestDiscoveryNeverReturns(t *testing.T) {
	e := newEngine(t)
	inputs := []Input{
		Typed("birthday"), Click("birthday-age-specific"), Click("birthday-memories"),
		Click("seasonal-special"), Typed("anniversary"), Click("anniversary-spa"), Typed("seasonal"),
	}

	ctx := NewContext()
	ended := false
	for _, in := range inputs {
		var err error
		ctx, _, err = e.Respond(ctx, in, "")
		require.NoError(t, err)
		if !ctx.DiscoveryPhase {
			ended = true
		}
		if ended {
			assert.False(t, ctx.DiscoveryPhase)
		}
	}
	assert.True(t, ended)
}

func TestRefinementClickKeepsDiscovery(t *testing.T) {
	e := newEngine(t)
	ctx, reply, err := e.Respond(NewContext(), Click("refine-premium"), "")
	require.NoError(t, err)

	assert.True(t, ctx.DiscoveryPhase)
	assert.Equal(t, 1, ctx.Depth)
	assert.Equal(t, "Show me premium or curated gift options", reply.User.Text)
}

func TestUnknownSuggestion(t *testing.T) {
	e := newEngine(t)
	_, _, err := e.Respond(NewContext(), Click("does-not-exist"), "")
	assert.ErrorIs(t, err, domain.ErrUnknownSuggestion)
}

func TestCartVendorOverridesCategory(t *testing.T) {
	e := newEngine(t)
	ctx, reply, err := e.Respond(NewContext(), Typed("birthday"), "Party Central")
	require.NoError(t, err)

	a := reply.Assistant
	assert.Equal(t, "Here's more from Party Central:", a.Text)
	assert.Empty(t, a.Suggestions)
	assert.Empty(t, a.SearchContext)
	assert.Equal(t, []string{"5", "6"}, productIDs(a.Products))
	assert.Len(t, a.VendorGroups, 4)
	assert.Equal(t, CategoryBirthday, ctx.LastCategory)
}

func TestRepeatedQueryIsNotRecordedTwice(t *testing.T) {
	e := newEngine(t)
	ctx, _, err := e.Respond(NewContext(), Typed("cheap flowers"), "")
	require.NoError(t, err)
	ctx, _, err = e.Respond(ctx, Typed("cheap flowers"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"cheap flowers"}, ctx.SearchQueries)
	assert.Equal(t, 1, ctx.InteractionCount)
	assert.Equal(t, []string{"budget-friendly"}, ctx.Preferences)
}

func TestPreferencesAccumulate(t *testing.T) {
	e := newEngine(t)
	ctx, _, err := e.Respond(NewContext(), Typed("cheap flowers"), "")
	require.NoError(t, err)
	ctx, _, err = e.Respond(ctx, Typed("something affordable and modern"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"budget-friendly", "budget-friendly", "modern"}, ctx.Preferences)
}

func TestVoiceInputIsFlagged(t *testing.T) {
	e := newEngine(t)
	_, reply, err := e.Respond(NewContext(), Voice("anniversary gift"), "")
	require.NoError(t, err)

	assert.True(t, reply.User.Voice)
	assert.Equal(t, CategoryAnniversary, reply.Category)
}

func TestPromptBehavesLikeTyped(t *testing.T) {
	e := newEngine(t)
	ctx, reply, err := e.Respond(NewContext(), FromPrompt("30th birthday surprise gift ideas"), "")
	require.NoError(t, err)

	assert.Equal(t, CategoryBirthday, reply.Category)
	assert.Equal(t, 0, ctx.Depth)
	assert.Len(t, reply.Assistant.Suggestions, 3)
}

func TestPostCartMessage(t *testing.T) {
	e := newEngine(t)
	p, err := catalog.MustLoad().Product("1")
	require.NoError(t, err)

	msg := e.PostCartMessage(p, 2)
	assert.Equal(t, "Great! I've added Premium Flower Bouquet to your cart (2 items total). What would you like to do next?", msg.Text)
	require.Len(t, msg.QuickActions, 2)
	assert.Equal(t, domain.ActionContinueShopping, msg.QuickActions[0].Action)
	assert.Equal(t, "Checkout Now (2)", msg.QuickActions[1].Label)
	assert.Equal(t, domain.ActionViewCart, msg.QuickActions[1].Action)
}

func TestContinueShopping(t *testing.T) {
	e := newEngine(t)

	msg := e.ContinueShopping("")
	assert.Equal(t, "What else would you like?", msg.Text)
	assert.Len(t, msg.VendorGroups, 4)
	assert.Empty(t, msg.Products)

	msg = e.ContinueShopping("Sweet Delights")
	assert.Equal(t, "Here's more from Sweet Delights:", msg.Text)
	assert.Equal(t, []string{"3"}, productIDs(msg.Products))
}

func TestHistory(t *testing.T) {
	var h History
	_, ok := h.Last()
	assert.False(t, ok)

	h.Append(domain.Message{ID: "a"}, domain.Message{ID: "b"})
	assert.Equal(t, 2, h.Len())
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.ID)

	all := h.All()
	all[0].ID = "changed"
	assert.Equal(t, "a", h.All()[0].ID)
}
