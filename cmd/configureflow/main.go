package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"configureflow/internal/config"
	"configureflow/internal/notify"
	"configureflow/internal/quote"
	"configureflow/internal/server"
	"configureflow/internal/storage"
	redisdrafts "configureflow/internal/storage/redis"
	"configureflow/pkg/api"
	"configureflow/pkg/logger"
)

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redisdrafts.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	drafts := redisdrafts.New(redisClient)
	defer drafts.Close()

	pgStorage, err := storage.NewPostgresStorage(ctx, storage.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		DBName:          cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var quoter quote.Quoter = quote.Engine{}
	if cfg.PricingBaseURL != "" {
		quoter = api.NewClient(cfg.PricingBaseURL, cfg.PricingAPIKey, zapLogger)
		zapLogger.Info("Using remote pricing backend", zap.String("url", cfg.PricingBaseURL))
	}
	if cfg.QuoteLatencyMax > 0 {
		quoter = quote.Delayed{Next: quoter, Min: cfg.QuoteLatencyMin, Max: cfg.QuoteLatencyMax}
	}

	var notifier server.Notifier
	if cfg.TelegramToken != "" {
		n, err := notify.New(cfg.TelegramToken, cfg.AdminChannelID, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to init Telegram notifier", zap.Error(err))
		}
		notifier = n
	}

	srv := server.New(pgStorage, drafts, pgStorage, quoter, notifier, zapLogger)

	if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
}
