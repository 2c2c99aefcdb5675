package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momentum/internal/amqp"
	"momentum/internal/cli"
	"momentum/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting billing-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Posted payments sync to the mirror like any other entry, so the
	// worker publishes nudges when AMQP is available.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync nudges", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized")
		}
	}

	ledger := services.NewLedgerService(sqliteRepo, amqpClient)
	processor := services.NewBillingProcessor(sqliteRepo, ledger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Subscription billing processor configured",
		"interval", cfg.BillingInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.BillingInterval)
	defer ticker.Stop()

	// Run initial processing on startup
	logger.Info("Running initial subscription billing pass...")
	if count, err := processor.ProcessDueSubscriptions(ctx, time.Now()); err != nil {
		logger.Error("Initial billing pass failed", "error", err)
	} else {
		logger.Info("Initial billing pass complete", "payments_posted", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				logger.Info("Processing due subscriptions...")
				count, err := processor.ProcessDueSubscriptions(ctx, now)
				if err != nil {
					logger.Error("Periodic billing pass failed", "error", err)
				} else {
					logger.Info("Periodic billing pass complete",
						"payments_posted", count,
						"next_check", now.Add(cfg.BillingInterval).Format("15:04:05"))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down billing-worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(2 * time.Second):
		logger.Info("Billing-worker shutdown complete")
	}
}
