package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
	tg "github.com/set-night/giftshop/internal/telegram"
)

// HandleMessage processes private messages that are not commands: answers
// to a question the bot asked, or something for the assistant.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || strings.HasPrefix(msg.Text, "/") {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	chatID := msg.Chat.ID

	if msg.Voice != nil {
		h.send(ctx, b, chatID, "🎤 I can't listen to audio yet. Send /voice followed by what you said.")
		return
	}
	if msg.Text == "" {
		return
	}

	if field, ok := sess.TakeAwaiting(); ok {
		h.handleAnswer(ctx, b, sess, msg, field)
		return
	}

	h.ask(ctx, b, sess, conversation.Typed(msg.Text), false)
}

// handleVoice takes a transcript: /voice flowers for my mom.
func (h *Handler) handleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	_, transcript, _ := strings.Cut(update.Message.Text, " ")
	if strings.TrimSpace(transcript) == "" {
		h.send(ctx, b, sess.ChatID, "Use: /voice <what you would say>")
		return
	}
	h.ask(ctx, b, sess, conversation.Voice(transcript), true)
}

// ask records the input and schedules the paced assistant reply.
func (h *Handler) ask(ctx context.Context, b *bot.Bot, sess *service.Session, in conversation.Input, echo bool) {
	reply, err := sess.Ask(in)
	if err != nil {
		h.send(ctx, b, sess.ChatID, h.reportError(err, "ask", sess.ChatID))
		return
	}
	h.deliver(ctx, b, sess, reply, echo)
}

func (h *Handler) deliver(ctx context.Context, b *bot.Bot, sess *service.Session, reply conversation.Reply, echo bool) {
	chatID := sess.ChatID
	if echo {
		h.send(ctx, b, chatID, renderUserEcho(reply.User))
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	h.pacer.Schedule(ctx, chatID, func() {
		defer stopTyping()
		sess.AppendAssistant(reply.Assistant)
		text, kb := renderAssistant(reply.Assistant, sess.Cart().Count)
		h.show(ctx, b, chatID, 0, text, kb)
	})
}

func (h *Handler) handlePromptClick(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, _, args, ok := callback(update, cbPrompt)
	sess := middleware.GetSession(ctx)
	h.handleNoop(ctx, b, update)
	if !ok || sess == nil || len(args) != 1 {
		return
	}

	sess.Navigate(router.ScreenGifts)
	reply, err := sess.AskPrompt(args[0])
	if err != nil {
		h.send(ctx, b, sess.ChatID, h.reportError(err, "prompt", sess.ChatID))
		return
	}
	h.deliver(ctx, b, sess, reply, true)
}

func (h *Handler) handleSuggestionClick(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, _, args, ok := callback(update, cbSuggestion)
	sess := middleware.GetSession(ctx)
	if !ok || sess == nil || len(args) != 1 {
		h.handleNoop(ctx, b, update)
		return
	}

	reply, err := sess.Ask(conversation.Click(args[0]))
	if err != nil {
		msg, _ := userMessage(err)
		tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, msg, false)
		return
	}
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	sess.Navigate(router.ScreenGifts)
	h.deliver(ctx, b, sess, reply, true)
}

func (h *Handler) handleQuickAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, _, args, ok := callback(update, cbAction)
	sess := middleware.GetSession(ctx)
	h.handleNoop(ctx, b, update)
	if !ok || sess == nil || len(args) != 1 {
		return
	}

	switch domain.QuickActionKind(args[0]) {
	case domain.ActionContinueShopping:
		msg := sess.ContinueShopping()
		text, kb := renderAssistant(msg, sess.Cart().Count)
		h.show(ctx, b, sess.ChatID, 0, text, kb)
	case domain.ActionViewCart:
		h.showScreen(ctx, b, sess, 0, router.ScreenCart)
	case domain.ActionCheckout:
		h.showScreen(ctx, b, sess, 0, router.ScreenCheckout)
	}
}

// handleAnswer routes a free-text answer to the form that asked for it.
// Fields are "<form>:<name>".
func (h *Handler) handleAnswer(ctx context.Context, b *bot.Bot, sess *service.Session, msg *models.Message, field string) {
	form, name, _ := strings.Cut(field, ":")
	value := strings.TrimSpace(msg.Text)

	switch form {
	case "delivery":
		h.answerDelivery(ctx, b, sess, name, value)
	case "option":
		h.answerOption(ctx, b, sess, name, value)
	case "signin", "signup", "forgot":
		h.answerAuth(ctx, b, sess, msg, form, name, value)
	default:
		h.ask(ctx, b, sess, conversation.Typed(msg.Text), false)
	}
}
