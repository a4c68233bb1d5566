package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
	tg "github.com/set-night/giftshop/internal/telegram"
)

func (h *Handler) handleOrders(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.showScreen(ctx, b, sess, 0, router.ScreenOrders)
	}
}

func (h *Handler) handleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.showScreen(ctx, b, sess, 0, router.ScreenProfile)
	}
}

// handleSignIn shows the sign-in screen, or signs in directly with
// /signin <email> <password>.
func (h *Handler) handleSignIn(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess := middleware.GetSession(ctx)
	if update.Message == nil || sess == nil {
		return
	}
	parts := strings.Fields(update.Message.Text)
	if len(parts) == 3 {
		h.deleteMessage(ctx, b, sess.ChatID, update.Message.ID)
		h.signIn(ctx, b, sess, parts[1], parts[2])
		return
	}
	h.openAuth(ctx, b, sess, 0, auth.ModeSignIn)
}

func (h *Handler) handleSignUp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		h.openAuth(ctx, b, sess, 0, auth.ModeSignUp)
	}
}

// handleReset asks for a reset link: /reset [email].
func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	sess := middleware.GetSession(ctx)
	if update.Message == nil || sess == nil {
		return
	}
	parts := strings.Fields(update.Message.Text)
	if len(parts) == 2 {
		h.resetPassword(ctx, b, sess, parts[1])
		return
	}
	h.openAuth(ctx, b, sess, 0, auth.ModeForgot)
}

func (h *Handler) handleSignOut(ctx context.Context, b *bot.Bot, update *models.Update) {
	if sess := middleware.GetSession(ctx); update.Message != nil && sess != nil {
		sess.SignOut()
		h.send(ctx, b, sess.ChatID, "👋 You're signed out.")
	}
}

func (h *Handler) openAuth(ctx context.Context, b *bot.Bot, sess *service.Session, messageID int, mode auth.Mode) {
	sess.ClearDrafts()
	sess.SetAuthMode(mode)
	h.showScreen(ctx, b, sess, messageID, router.ScreenAuth)
}

// handleAuthAction handles the auth buttons: au:mode:<mode>, au:start:<mode>,
// au:social:<provider>, au:signup:<yes|no>, au:signout.
func (h *Handler) handleAuthAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, messageID, args, ok := callback(update, cbAuth)
	sess := middleware.GetSession(ctx)
	h.handleNoop(ctx, b, update)
	if !ok || sess == nil || len(args) == 0 {
		return
	}
	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	switch args[0] {
	case "mode":
		h.openAuth(ctx, b, sess, messageID, auth.Mode(arg))

	case "start":
		sess.ClearDrafts()
		switch auth.Mode(arg) {
		case auth.ModeSignUp:
			h.askAuth(ctx, b, sess, "signup:name", "👤 What's your full name?")
		case auth.ModeForgot:
			h.askAuth(ctx, b, sess, "forgot:email", "✉️ Send the email address of your account.")
		default:
			h.askAuth(ctx, b, sess, "signin:email", "✉️ Send your email address.")
		}

	case "social":
		u, err := sess.SocialSignIn(ctx, arg)
		h.afterSignIn(ctx, b, sess, u, err, false)

	case "signup":
		if sess.Draft("email") == "" {
			h.openAuth(ctx, b, sess, messageID, auth.ModeSignUp)
			return
		}
		h.show(ctx, b, sess.ChatID, messageID, "⏳ Creating your account...", nil)
		form := auth.SignUpForm{
			Name:            sess.Draft("name"),
			Email:           sess.Draft("email"),
			Password:        sess.Draft("password"),
			ConfirmPassword: sess.Draft("confirm"),
			AcceptTerms:     arg == "yes",
		}
		u, err := sess.SignUp(ctx, form)
		if err == nil {
			sess.ClearDrafts()
		}
		h.afterSignIn(ctx, b, sess, u, err, true)

	case "signout":
		sess.SignOut()
		h.show(ctx, b, sess.ChatID, messageID, "👋 You're signed out.", nil)
	}
}

func (h *Handler) askAuth(ctx context.Context, b *bot.Bot, sess *service.Session, field, question string) {
	sess.Await(field)
	h.send(ctx, b, sess.ChatID, question)
}

// answerAuth collects the sign-in, sign-up and reset forms one field at a time.
func (h *Handler) answerAuth(ctx context.Context, b *bot.Bot, sess *service.Session, msg *models.Message, form, field, value string) {
	if field == "password" || field == "confirm" {
		h.deleteMessage(ctx, b, sess.ChatID, msg.ID)
	}

	switch form + ":" + field {
	case "signin:email":
		sess.SetDraft("email", value)
		h.askAuth(ctx, b, sess, "signin:password", "🔑 Now send your password.")
	case "signin:password":
		email := sess.Draft("email")
		sess.ClearDrafts()
		h.signIn(ctx, b, sess, email, msg.Text)

	case "signup:name":
		sess.SetDraft("name", value)
		h.askAuth(ctx, b, sess, "signup:email", "✉️ Send your email address.")
	case "signup:email":
		sess.SetDraft("email", value)
		h.askAuth(ctx, b, sess, "signup:password", "🔑 Choose a password.")
	case "signup:password":
		sess.SetDraft("password", msg.Text)
		h.askAuth(ctx, b, sess, "signup:confirm", "🔑 Send the password again to confirm.")
	case "signup:confirm":
		sess.SetDraft("confirm", msg.Text)
		kb := tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("☑️ I accept the terms, create account", data(cbAuth, "signup", "yes"))),
			tg.ButtonRow(tg.InlineButton("Create account", data(cbAuth, "signup", "no"))),
		)
		h.show(ctx, b, sess.ChatID, 0, "📜 Please review and accept the terms and conditions.", kb)

	case "forgot:email":
		h.resetPassword(ctx, b, sess, value)
	}
}

func (h *Handler) signIn(ctx context.Context, b *bot.Bot, sess *service.Session, email, password string) {
	stop := tg.StartTyping(ctx, b, sess.ChatID)
	u, err := sess.SignIn(ctx, email, password)
	stop()
	h.afterSignIn(ctx, b, sess, u, err, false)
}

func (h *Handler) afterSignIn(ctx context.Context, b *bot.Bot, sess *service.Session, u domain.User, err error, signUp bool) {
	if err != nil {
		h.send(ctx, b, sess.ChatID, "❌ "+h.reportError(err, "auth", sess.ChatID))
		return
	}
	if signUp {
		h.opsLogger.LogSignUp(sess.ChatID, u)
	}
	h.send(ctx, b, sess.ChatID, fmt.Sprintf("✅ Welcome, *%s*!", esc(u.Name)))
	h.showScreen(ctx, b, sess, 0, sess.Screen())
}

func (h *Handler) resetPassword(ctx context.Context, b *bot.Bot, sess *service.Session, email string) {
	if err := sess.ResetPassword(ctx, email); err != nil {
		h.send(ctx, b, sess.ChatID, h.reportError(err, "reset password", sess.ChatID))
		return
	}
	h.send(ctx, b, sess.ChatID, fmt.Sprintf("📧 If an account exists for %s, a reset link is on its way.", esc(email)))
	h.showScreen(ctx, b, sess, 0, router.ScreenAuth)
}

func (h *Handler) deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID})
}
