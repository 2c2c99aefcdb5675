package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momentum/internal/amqp"
	"momentum/internal/backend"
	"momentum/internal/cli"
	"momentum/internal/services"
	"momentum/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting momentum-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Pick the mirror target
	mirrorCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid mirror configuration", "error", err)
		os.Exit(1)
	}
	if err := mirrorCfg.Validate(); err != nil {
		logger.Error("Mirror configuration validation failed", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateMirror(context.Background(), mirrorCfg)
	if err != nil {
		logger.Error("Failed to create mirror", "error", err, "type", mirrorCfg.Type)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Mirror cleanup failed", "error", err)
			}
		}()
	}

	// AMQP consumption is the fast path; sync queue polling covers the rest
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, polling only", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	processorCfg := services.DefaultSyncProcessorConfig()
	processorCfg.PollInterval = cfg.SyncInterval
	processorCfg.BatchSize = cfg.SyncBatchSize

	mirrorWorker := worker.NewMirrorWorker(sqliteRepo, amqpClient, result.Mirror, processorCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mirrorWorker.VerifyTaxonomy(ctx); err != nil {
		logger.Warn("Taxonomy verification failed", "error", err)
		// Advisory only, keep running
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- mirrorWorker.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case err := <-runErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Worker failed", "error", err)
		}
	}

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-runErr:
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
	logger.Info("Worker shutdown complete")
}
