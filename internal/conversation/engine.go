// Package conversation turns shopper input into assistant replies: it
// classifies the request, rotates follow-up suggestions and picks products.
// It holds no state of its own; callers thread a Context through Respond.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/domain"
)

type InputKind int

const (
	InputTyped InputKind = iota
	InputVoice
	InputPrompt
	InputSuggestion
)

// Input is one shopper action. Text is required for typed, voice and prompt
// inputs; SuggestionID for suggestion clicks.
type Input struct {
	Kind         InputKind
	Text         string
	SuggestionID string
}

func Typed(text string) Input {
	return Input{Kind: InputTyped, Text: text}
}

func Voice(transcript string) Input {
	return Input{Kind: InputVoice, Text: transcript}
}

func FromPrompt(query string) Input {
	return Input{Kind: InputPrompt, Text: query}
}

func Click(suggestionID string) Input {
	return Input{Kind: InputSuggestion, SuggestionID: suggestionID}
}

// Reply is what one input produced: the recorded user turn and the answer.
type Reply struct {
	User      domain.Message
	Assistant domain.Message
	Category  Category
}

type Engine struct {
	cat   Catalog
	now   func() time.Time
	newID func() string
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(cat Catalog, opts ...Option) *Engine {
	e := &Engine{cat: cat, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond applies one input to ctx. cartVendor, when set, restricts products
// to that vendor and suppresses suggestions.
func (e *Engine) Respond(ctx Context, in Input, cartVendor string) (Context, Reply, error) {
	next := ctx.Clone()

	text := strings.TrimSpace(in.Text)
	if in.Kind == InputSuggestion {
		s, ok := LookupSuggestion(in.SuggestionID)
		if !ok {
			return ctx, Reply{}, fmt.Errorf("suggestion %q: %w", in.SuggestionID, domain.ErrUnknownSuggestion)
		}
		if ctx.hasClicked(s.ID) {
			return ctx, Reply{}, fmt.Errorf("suggestion %q: %w", s.ID, domain.ErrSuggestionUsed)
		}
		text = s.SearchQuery

		next.Depth++
		next.ClickedSuggestions = append(next.ClickedSuggestions, s.ID)
		if IsMainCategory(s.ID) {
			next.DiscoveryPhase = false
			next.FirstButtonClicked = true
		}
	} else {
		if text == "" {
			return ctx, Reply{}, domain.ErrEmptyUtterance
		}
		next.Depth = 0
	}

	if !next.hasAsked(text) {
		next.SearchQueries = append(next.SearchQueries, text)
		next.InteractionCount++
		if in.Kind != InputSuggestion {
			next.Preferences = append(next.Preferences, ExtractPreferences(text)...)
		}
	}

	category := Classify(text)
	next.LastCategory = category

	now := e.now()
	user := domain.Message{
		ID:        e.newID(),
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: now,
		Voice:     in.Kind == InputVoice,
	}

	answer := domain.Message{
		ID:           e.newID(),
		Role:         domain.RoleAssistant,
		Timestamp:    now,
		VendorGroups: e.cat.VendorGroups(),
	}
	if cartVendor != "" {
		answer.Text = vendorText(cartVendor)
		answer.Products = catalog.Usable(e.cat.ByVendor(cartVendor))
	} else {
		answer.Text = ResponseText(category)
		answer.SearchContext = string(category)
		answer.Products = SelectProducts(e.cat, text, next.InteractionCount)
		if next.ShowsSuggestions() {
			answer.Suggestions = SelectSuggestions(category, next)
		}
	}
	next.markShown(productIDs(answer.Products))

	return next, Reply{User: user, Assistant: answer, Category: category}, nil
}

// PostCartMessage confirms an add to cart and offers the next steps.
// cartCount is the number of items after the add.
func (e *Engine) PostCartMessage(p domain.Product, cartCount int) domain.Message {
	return domain.Message{
		ID:        e.newID(),
		Role:      domain.RoleAssistant,
		Timestamp: e.now(),
		Text: fmt.Sprintf("Great! I've added %s to your cart (%d items total). What would you like to do next?",
			p.Name, cartCount),
		QuickActions: []domain.QuickAction{
			{ID: "continue", Label: "Continue Shopping", Action: domain.ActionContinueShopping},
			{ID: "checkout", Label: fmt.Sprintf("Checkout Now (%d)", cartCount), Action: domain.ActionViewCart},
		},
	}
}

// ContinueShopping answers the "continue shopping" quick action.
func (e *Engine) ContinueShopping(cartVendor string) domain.Message {
	msg := domain.Message{
		ID:           e.newID(),
		Role:         domain.RoleAssistant,
		Timestamp:    e.now(),
		Text:         "What else would you like?",
		VendorGroups: e.cat.VendorGroups(),
	}
	if cartVendor != "" {
		msg.Text = vendorText(cartVendor)
		msg.Products = catalog.Usable(e.cat.ByVendor(cartVendor))
	}
	return msg
}

func vendorText(vendor string) string {
	return fmt.Sprintf("Here's more from %s:", vendor)
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
