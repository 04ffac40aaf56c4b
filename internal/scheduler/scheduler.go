package scheduler

import (
	"context"
	"log/slog"
	"time"

	"voice_courier/internal/domain"
)

// Retrier re-attempts every outstanding upload.
type Retrier interface {
	RetryAll(ctx context.Context) (*domain.RetryStats, error)
}

type Scheduler struct {
	retrier    Retrier
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(retrier Retrier, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		retrier:    retrier,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

// Start runs a retry pass immediately and then on every tick until ctx is done.
// Each pass re-attempts every pending or failed recording and is cut off after
// runTimeout; recordings it did not reach stay outstanding for the next tick.
// A pass that returns an error is logged and does not stop the loop, so the
// only way Start returns is through ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "run_timeout", s.runTimeout)

	s.runRetry(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRetry(ctx)
		}
	}
}

func (s *Scheduler) runRetry(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	stats, err := s.retrier.RetryAll(runCtx)
	if err != nil {
		s.logger.Error("retry failed", "error", err)
		return
	}

	s.logger.Info("retry pass completed",
		"keys", stats.Keys,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)
}
