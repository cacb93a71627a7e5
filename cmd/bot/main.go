package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot"
	"talentgraph-bot/internal/bot/scheduler"
	"talentgraph-bot/internal/config"
	"talentgraph-bot/internal/logger"
	"talentgraph-bot/internal/storage/postgres"
	"talentgraph-bot/internal/storage/redis"
	"talentgraph-bot/internal/validator"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting TalentGraph bot",
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_url", cfg.APIBaseURL),
		zap.Duration("check_interval", cfg.CheckInterval),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	api := talentgraph.New(cfg.APIBaseURL, cfg.APITimeout, log)

	validate, err := validator.New()
	if err != nil {
		log.Fatal("failed to set up validation", zap.Error(err))
	}

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, api, validate, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	checker := scheduler.New(tgBot.GetBot(), store, api, cfg.CheckInterval, log)
	go checker.Start(ctx)

	log.Info("bot is running...")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("bot stopped")
}
