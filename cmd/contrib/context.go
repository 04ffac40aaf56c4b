package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"voice_courier/internal/blob"
	"voice_courier/internal/config"
	"voice_courier/internal/corpus"
	"voice_courier/internal/domain"
	"voice_courier/internal/publisher"
	"voice_courier/internal/service"
	"voice_courier/internal/storage"
)

var errNoUser = errors.New("--user is required")

type commandContext struct {
	configFlag *string
	userFlag   *int64

	// logOutput receives structured logs; stdout is kept for command output.
	logOutput io.Writer

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, userFlag *int64) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		userFlag:   userFlag,
		logOutput:  os.Stderr,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) contributorID() (int64, error) {
	if c.userFlag == nil || *c.userFlag <= 0 {
		return 0, errNoUser
	}
	return *c.userFlag, nil
}

// app is the set of services one command invocation works with.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stores *storage.Stores
	client *corpus.Client

	accounts   *service.AccountService
	tracker    *service.AssignmentTracker
	recordings *service.RecordingService

	closers []func() error
}

func (c *commandContext) withApp(ctx context.Context, fn func(*app) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger := newLogger(c.logOutput, cfg.LogLevel)

	stores, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	client := corpus.New(corpus.Config{
		BaseURL:           cfg.Corpus.BaseURL,
		ClientID:          cfg.Corpus.ClientID,
		ClientSecret:      cfg.Corpus.ClientSecret,
		Timeout:           cfg.Corpus.Timeout,
		TokenExpiryBuffer: cfg.Corpus.TokenExpiryBuffer,
		TokenLifetime:     cfg.Corpus.TokenLifetime,
		UserAgent:         cfg.Corpus.UserAgent,
	}, logger)

	recordings := service.NewRecordingService(stores.Sentences, stores.Recordings, stores.TxManager, logger)

	a := &app{
		cfg:    cfg,
		logger: logger,
		stores: stores,
		client: client,
		accounts: service.NewAccountService(
			stores.Accounts,
			stores.Recordings,
			client,
			logger,
		),
		tracker: service.NewAssignmentTracker(
			stores.Accounts,
			stores.Sentences,
			client,
			stores.TxManager,
			logger,
			cfg.Languages,
			cfg.Sentences,
		),
		recordings: recordings,
		closers:    []func() error{stores.Close, client.Close},
	}
	defer a.close()

	return fn(a)
}

// uploads wires the blob source and the optional event publisher, which only
// the commands that push audio need. An unreachable broker only disables
// events for this run.
func (a *app) uploads() (*service.UploadService, error) {
	blobs, err := a.blobSource()
	if err != nil {
		return nil, err
	}

	var events service.Publisher
	if a.cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			a.logger.Warn("upload events disabled, rabbitmq unreachable", "error", err)
		} else {
			a.closers = append(a.closers, rabbitMQ.Close)
			events = rabbitMQ
		}
	}

	return service.NewUploadService(
		a.stores.Accounts,
		a.stores.Sentences,
		a.stores.Recordings,
		a.recordings,
		a.client,
		blobs,
		events,
		a.logger,
	), nil
}

func (a *app) blobSource() (blob.Fetcher, error) {
	blobs, err := blob.New(a.cfg.Blobs, a.cfg.Corpus.Timeout)
	if err != nil {
		return nil, fmt.Errorf("init blob source %s: %w", a.cfg.Blobs.Source, err)
	}
	return blobs, nil
}

func (c *commandContext) withAccount(ctx context.Context, fn func(*app, *domain.Account) error) error {
	contributorID, err := c.contributorID()
	if err != nil {
		return err
	}
	return c.withApp(ctx, func(a *app) error {
		account, err := a.accounts.Get(ctx, contributorID)
		if err != nil {
			return err
		}
		return fn(a, account)
	})
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", "error", err)
		}
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
