package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/service"
	"github.com/set-night/giftshop/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	catalog   *catalog.Catalog
	store     *service.SessionStore
	pacer     *service.Pacer
	opsLogger *telegram.OpsLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Catalog   *catalog.Catalog
	Store     *service.SessionStore
	Pacer     *service.Pacer
	OpsLogger *telegram.OpsLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		catalog:   deps.Catalog,
		store:     deps.Store,
		pacer:     deps.Pacer,
		opsLogger: deps.OpsLogger,
	}
}
