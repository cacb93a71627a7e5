package bot

import (
	"context"
	"fmt"
	"time"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot/handlers"
	"talentgraph-bot/internal/bot/middleware"
	"talentgraph-bot/internal/config"
	"talentgraph-bot/internal/storage/postgres"
	"talentgraph-bot/internal/storage/redis"
	"talentgraph-bot/internal/validator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot       *tele.Bot
	store     *postgres.Store
	cache     *redis.Cache
	api       *talentgraph.Client
	validator *validator.Validator
	config    *config.Config
	logger    *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	api *talentgraph.Client,
	validate *validator.Validator,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("telegram error", zap.Error(err))
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		store:     store,
		cache:     cache,
		api:       api,
		validator: validate,
		config:    cfg,
		logger:    logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, middleware.MaxRequestsPerMinute, b.logger))

	b.bot.Use(middleware.Auth(b.store, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Store:     b.store,
		Cache:     b.cache,
		API:       b.api,
		Validator: b.validator,
		Config:    b.config,
		Logger:    b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/login", handlers.HandleLogin(ctx))
	b.bot.Handle("/logout", handlers.HandleLogout(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/preferences", handlers.HandlePreferences(ctx))
	b.bot.Handle("/dashboard", handlers.HandleDashboard(ctx))
	b.bot.Handle("/settings", handlers.HandleSettings(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
