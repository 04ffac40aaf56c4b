package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice_courier/internal/blob"
	"voice_courier/internal/config"
	"voice_courier/internal/corpus"
	"voice_courier/internal/domain"
	"voice_courier/internal/publisher"
	"voice_courier/internal/scheduler"
	"voice_courier/internal/service"
	"voice_courier/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer stores.Close()
	logger.Info("storage ready", "backend", stores.Backend)

	client := corpus.New(corpus.Config{
		BaseURL:           cfg.Corpus.BaseURL,
		ClientID:          cfg.Corpus.ClientID,
		ClientSecret:      cfg.Corpus.ClientSecret,
		Timeout:           cfg.Corpus.Timeout,
		TokenExpiryBuffer: cfg.Corpus.TokenExpiryBuffer,
		TokenLifetime:     cfg.Corpus.TokenLifetime,
		UserAgent:         cfg.Corpus.UserAgent,
	}, logger)
	defer client.Close()

	blobs, err := blob.New(cfg.Blobs, cfg.Corpus.Timeout)
	if err != nil {
		logger.Error("failed to init blob source", "source", cfg.Blobs.Source, "error", err)
		os.Exit(1)
	}

	if err := preflight(ctx, client, blobs, cfg.Corpus.Timeout, logger); err != nil {
		logger.Error("preflight failed", "error", err)
		os.Exit(1)
	}

	// A nil publisher disables upload events.
	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	recordings := service.NewRecordingService(stores.Sentences, stores.Recordings, stores.TxManager, logger)
	uploads := service.NewUploadService(
		stores.Accounts,
		stores.Sentences,
		stores.Recordings,
		recordings,
		client,
		blobs,
		events,
		logger,
	)

	sched := scheduler.NewScheduler(uploads, cfg.Retry.Interval, cfg.Retry.RunTimeout, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting upload retrier",
		"interval", cfg.Retry.Interval,
		"blob_source", cfg.Blobs.Source,
		"events", cfg.RabbitMQ.Enabled,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

type credentialRefresher interface {
	RefreshToken(ctx context.Context) error
}

// preflight checks the corpus service and the blob source. Only rejected
// credentials are fatal; an unreachable service is logged and picked up again
// by the next retry pass.
func preflight(
	ctx context.Context,
	corpus credentialRefresher,
	blobs blob.Fetcher,
	timeout time.Duration,
	logger *slog.Logger,
) error {
	if err := corpus.RefreshToken(ctx); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("corpus service rejected the configured credentials: %w", err)
		}
		logger.Warn("corpus service unreachable, uploads wait for the next retry pass", "error", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := blobs.Check(checkCtx); err != nil {
		logger.Warn("blob source unreachable, uploads wait for the next retry pass", "error", err)
	}

	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
