package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zhangben/internal/amqp"
	"zhangben/internal/config"
	"zhangben/internal/services"
	"zhangben/internal/settle"
	"zhangben/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting settle-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if !cfg.AutoSettle {
		logger.Info("AUTO_SETTLE disabled, nothing to do")
		return
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, settlements will not reach the backup", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	settlement := services.NewSettlementService(settle.NewEngine(repo), publisher)
	processor := services.NewAutoSettleProcessor(settlement)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Auto-settlement configured", "check_interval", cfg.SettleCheckInterval)

	run := func(now time.Time) {
		if _, err := processor.ProcessDuePeriod(ctx, now); err != nil {
			logger.Error("Auto-settlement check failed", "error", err)
		}
	}

	run(time.Now())

	ticker := time.NewTicker(cfg.SettleCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Settle-worker stopped gracefully")
			return
		case now := <-ticker.C:
			run(now)
		}
	}
}
