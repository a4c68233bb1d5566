package service

import (
	"sync"
	"time"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/cart"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/conversation"
)

// SessionStore keeps one shopping session per chat, in memory only.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	deps     sessionDeps
	now      func() time.Time
}

type sessionDeps struct {
	catalog *catalog.Catalog
	engine  *conversation.Engine
	auth    *auth.Service
	pricing cart.Pricing
	shop    *config.Shop
}

func NewSessionStore(shop *config.Shop, cat *catalog.Catalog, engine *conversation.Engine, authService *auth.Service) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		deps: sessionDeps{
			catalog: cat,
			engine:  engine,
			auth:    authService,
			pricing: cart.DefaultPricing(),
			shop:    shop,
		},
		now: time.Now,
	}
}

// FindOrCreate returns the chat's session, starting a fresh one if needed.
// created reports whether the session is new.
func (s *SessionStore) FindOrCreate(chatID int64) (sess *Session, created bool) {
	now := s.now()

	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		sess.touch(now)
		return sess, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		sess.touch(now)
		return sess, false
	}
	sess = newSession(chatID, &s.deps, now)
	s.sessions[chatID] = sess
	return sess, true
}

func (s *SessionStore) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Reset drops the chat's session and starts a new one.
func (s *SessionStore) Reset(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := newSession(chatID, &s.deps, s.now())
	s.sessions[chatID] = sess
	return sess
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupIdle drops sessions not used for longer than ttl and returns how many were dropped.
func (s *SessionStore) CleanupIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
