package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/sync/errgroup"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/handler"
	"github.com/set-night/giftshop/internal/middleware"
	"github.com/set-night/giftshop/internal/service"
	"github.com/set-night/giftshop/internal/telegram"
)

var commands = []models.BotCommand{
	{Command: "start", Description: "Start shopping"},
	{Command: "browse", Description: "Our picks and vendors"},
	{Command: "cart", Description: "Your cart"},
	{Command: "checkout", Description: "Check out"},
	{Command: "orders", Description: "Your orders"},
	{Command: "profile", Description: "Your profile"},
	{Command: "voice", Description: "Ask by voice transcript"},
	{Command: "signin", Description: "Sign in"},
	{Command: "signup", Description: "Create an account"},
	{Command: "signout", Description: "Sign out"},
	{Command: "reset", Description: "Reset your password"},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Shop.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", cat.Len(), "vendors", len(cat.Vendors()))

	// Initialize services
	engine := conversation.New(cat)
	authService := auth.New(&cfg.Shop)
	store := service.NewSessionStore(&cfg.Shop, cat, engine, authService)
	pacer := service.NewPacer(cfg.Shop.ReplyDelay)

	// Set once the bot exists; middlewares run only after Start.
	var opsLogger *telegram.OpsLogger
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(func(err error, chatID int64) {
				opsLogger.LogError(err, "panic")
			}),
			middleware.Logging(),
			middleware.RateLimit(middleware.NewLimiter(cfg.RateLimitPerMinute)),
			middleware.SessionLoader(store, func(chatID int64) {
				slog.Info("session started", "chat_id", chatID, "sessions", store.Len())
			}),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			h.HandleMessage(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}
	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		slog.Warn("failed to set bot commands", "error", err)
	}

	opsLogger = telegram.NewOpsLogger(b, cfg)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Catalog:   cat,
		Store:     store,
		Pacer:     pacer,
		OpsLogger: opsLogger,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for shopper messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.HandleMessage)

	g, gctx := errgroup.WithContext(ctx)

	// Drop sessions nobody has touched for a while
	g.Go(func() error {
		ticker := time.NewTicker(config.SessionCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := store.CleanupIdle(cfg.Shop.SessionTTL); n > 0 {
					slog.Info("idle sessions removed", "count", n, "remaining", store.Len())
				}
			}
		}
	})

	// Start bot
	g.Go(func() error {
		slog.Info("starting bot", "username", me.Username, "id", me.ID)
		b.Start(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("bot stopped with error", "error", err)
	}

	// Let in-flight replies finish or observe the cancellation
	pacer.Wait()
	slog.Info("bot stopped gracefully")
}
