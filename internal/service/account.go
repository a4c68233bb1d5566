package service

import (
	"context"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
)

// The auth calls are slow, so they run without holding the session lock.

func (s *Session) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.deps.auth.SignIn(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	s.signedIn(u)
	return u, nil
}

func (s *Session) SignUp(ctx context.Context, form auth.SignUpForm) (domain.User, error) {
	u, err := s.deps.auth.SignUp(ctx, form)
	if err != nil {
		return domain.User{}, err
	}
	s.signedIn(u)
	return u, nil
}

func (s *Session) SocialSignIn(ctx context.Context, provider string) (domain.User, error) {
	u, err := s.deps.auth.SocialSignIn(ctx, provider)
	if err != nil {
		return domain.User{}, err
	}
	s.signedIn(u)
	return u, nil
}

// ResetPassword sends the reset link and returns the auth screen to sign-in mode.
func (s *Session) ResetPassword(ctx context.Context, email string) error {
	if err := s.deps.auth.ResetPassword(ctx, email); err != nil {
		return err
	}
	s.SetAuthMode(auth.ModeSignIn)
	return nil
}

func (s *Session) signedIn(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.router.NavigateTo(router.ScreenGifts, true)
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authMode = auth.ModeSignIn
	if router.RequiresAuth(s.router.Current()) {
		s.router.NavigateTo(router.ScreenGifts, false)
	}
}

func (s *Session) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Session) AuthMode() auth.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authMode
}

func (s *Session) SetAuthMode(m auth.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authMode = m
}
