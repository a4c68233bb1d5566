package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
)

// Session is one shopper's state: the chat, the cart, the current screen,
// the checkout in progress and the signed-in user. All methods are safe for
// concurrent use.
type Session struct {
	ChatID int64

	deps     *sessionDeps
	lastSeen atomic.Int64

	mu      sync.Mutex
	placing bool

	convo   conversation.Context
	history conversation.History
	cart    *cart.Cart
	router  *router.Router
	flow    *checkout.Flow
	pending *pendingItem

	awaiting string
	drafts   map[string]string

	user      *domain.User
	authMode  auth.Mode
	orders    []domain.Order
	lastOrder *domain.Order
}

func newSession(chatID int64, deps *sessionDeps, now time.Time) *Session {
	sess := &Session{
		ChatID:   chatID,
		deps:     deps,
		convo:    conversation.NewContext(),
		cart:     cart.New(deps.pricing),
		router:   router.New(),
		authMode: auth.ModeSignIn,
	}
	sess.touch(now)
	return sess
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen does not take the session lock.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Ask records the shopper's input and computes the answer. The user turn is
// appended right away; the assistant turn is appended by AppendAssistant once
// it is delivered.
func (s *Session) Ask(in conversation.Input) (conversation.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, reply, err := s.deps.engine.Respond(s.convo, in, s.cart.Vendor())
	if err != nil {
		return conversation.Reply{}, fmt.Errorf("ask: %w", err)
	}
	s.convo = next
	s.history.Append(reply.User)
	return reply, nil
}

// AskPrompt answers a welcome card as if its query had been typed.
func (s *Session) AskPrompt(promptID string) (conversation.Reply, error) {
	p, err := s.deps.catalog.Prompt(promptID)
	if err != nil {
		return conversation.Reply{}, err
	}
	return s.Ask(conversation.FromPrompt(p.Query))
}

func (s *Session) AppendAssistant(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Append(msg)
}

// Context returns a copy of the conversation state.
func (s *Session) Context() conversation.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convo.Clone()
}

func (s *Session) History() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.All()
}

// AddToCart adds a product with raw customization values and appends the
// confirmation message to the chat.
func (s *Session) AddToCart(productID string, raw map[string]string) (domain.LineItem, domain.Message, error) {
	p, err := s.deps.catalog.Product(productID)
	if err != nil {
		return domain.LineItem{}, domain.Message{}, err
	}
	cz, err := cart.ParseCustomizations(p, raw)
	if err != nil {
		return domain.LineItem{}, domain.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(p, cz)
}

func (s *Session) addLocked(p domain.Product, cz domain.Customizations) (domain.LineItem, domain.Message, error) {
	item, err := s.cart.Add(p, cz)
	if err != nil {
		return domain.LineItem{}, domain.Message{}, err
	}
	msg := s.deps.engine.PostCartMessage(p, s.cart.Len())
	s.history.Append(msg)
	return item, msg, nil
}

// ContinueShopping answers the quick action and appends the answer.
func (s *Session) ContinueShopping() domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.deps.engine.ContinueShopping(s.cart.Vendor())
	s.history.Append(msg)
	s.router.NavigateTo(router.ScreenGifts, s.user != nil)
	return msg
}

func (s *Session) UpdateQuantity(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.UpdateQuantity(itemID, qty)
}

// ChangeQuantity adds delta to a line's quantity. Reaching zero removes the line.
func (s *Session) ChangeQuantity(itemID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.cart.Item(itemID)
	if err != nil {
		return err
	}
	qty := item.Quantity + delta
	if qty < 0 {
		qty = 0
	}
	return s.cart.UpdateQuantity(itemID, qty)
}

func (s *Session) RemoveItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(itemID)
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ClearAll()
}

// CartView is a consistent snapshot of the cart.
type CartView struct {
	Vendor string
	Items  []domain.LineItem
	Count  int
	Totals domain.Totals
}

func (v CartView) Empty() bool {
	return len(v.Items) == 0
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *Session) cartViewLocked() CartView {
	return CartView{
		Vendor: s.cart.Vendor(),
		Items:  s.cart.Items(),
		Count:  s.cart.Count(),
		Totals: s.cart.Totals(),
	}
}

func (s *Session) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// Navigate moves to a screen, applying the sign-in guard.
func (s *Session) Navigate(screen router.Screen) router.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.NavigateTo(screen, s.user != nil)
}

func (s *Session) Screen() router.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Current()
}
