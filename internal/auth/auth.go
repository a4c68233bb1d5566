// Package auth is the demo account service. Only the configured demo
// credentials sign in; sign-up succeeds for any well-formed form.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

type Mode string

const (
	ModeSignIn Mode = "signin"
	ModeSignUp Mode = "signup"
	ModeForgot Mode = "forgot"
)

type SignUpForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

type Service struct {
	email    string
	password string
	delay    time.Duration
}

func New(cfg *config.Shop) *Service {
	return &Service{
		email:    cfg.DemoEmail,
		password: cfg.DemoPassword,
		delay:    cfg.AuthDelay,
	}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, fmt.Errorf("sign in: %w", err)
	}
	if strings.TrimSpace(email) != s.email || password != s.password {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return domain.User{Name: "Demo User", Email: s.email}, nil
}

func (s *Service) SignUp(ctx context.Context, form SignUpForm) (domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, fmt.Errorf("sign up: %w", err)
	}
	if form.Password != form.ConfirmPassword {
		return domain.User{}, domain.ErrPasswordMismatch
	}
	if !form.AcceptTerms {
		return domain.User{}, domain.ErrTermsRequired
	}
	return domain.User{Name: strings.TrimSpace(form.Name), Email: strings.TrimSpace(form.Email)}, nil
}

// ResetPassword pretends to send a reset link. It only fails if ctx is done.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if err := s.wait(ctx); err != nil {
		return fmt.Errorf("reset password for %s: %w", email, err)
	}
	return nil
}

// SocialSignIn signs in through a third-party provider. Every provider yields the same account.
func (s *Service) SocialSignIn(ctx context.Context, provider string) (domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, fmt.Errorf("sign in with %s: %w", provider, err)
	}
	return domain.User{Name: "Social User", Email: "user@example.com"}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
