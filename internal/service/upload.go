package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"voice_courier/internal/domain"
)

var retryableStatuses = []domain.RecordingStatus{domain.RecordingPending, domain.RecordingFailed}

// UploadService pushes pending and failed recordings to the corpus service.
// Items are processed sequentially and one failing item never aborts the rest,
// except for authentication failures which would fail every remaining item.
type UploadService struct {
	accounts   AccountStore
	sentences  SentenceStore
	recordings RecordingStore
	machine    *RecordingService
	corpus     CorpusAPI
	blobs      BlobFetcher
	publisher  Publisher
	logger     *slog.Logger
}

func NewUploadService(
	accounts AccountStore,
	sentences SentenceStore,
	recordings RecordingStore,
	machine *RecordingService,
	corpus CorpusAPI,
	blobs BlobFetcher,
	publisher Publisher,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		accounts:   accounts,
		sentences:  sentences,
		recordings: recordings,
		machine:    machine,
		corpus:     corpus,
		blobs:      blobs,
		publisher:  publisher,
		logger:     logger.With("component", "uploads"),
	}
}

// SyncPending uploads every pending or failed recording of the active batch.
// The summary is always returned; the error is set when the loop stopped early.
func (s *UploadService) SyncPending(ctx context.Context, account *domain.Account, language string) (*domain.UploadSummary, error) {
	startTime := time.Now()
	logger := s.logger.With("account_id", account.AccountID, "language", language)

	summary := &domain.UploadSummary{
		AccountID: account.AccountID,
		Language:  language,
	}

	items, err := s.recordings.ListByStatus(ctx, account.AccountID, language, retryableStatuses)
	if err != nil {
		return summary, fmt.Errorf("list recordings: %w", err)
	}

	logger.Info("starting upload sync", "items", len(items))

	var stopErr error
	for i := range items {
		if err := ctx.Err(); err != nil {
			stopErr = fmt.Errorf("sync interrupted: %w", err)
			break
		}

		if err := s.process(ctx, logger, account, &items[i], summary); err != nil {
			stopErr = err
			break
		}
	}

	summary.Duration = time.Since(startTime)

	logger.Info("upload sync completed",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"remaining", len(items)-summary.Attempted,
		"duration", summary.Duration,
	)

	return summary, stopErr
}

// UploadRecording uploads one stored recording right after submission.
// Failures mark it failed for a later sync; the error is set only for
// authentication failures.
func (s *UploadService) UploadRecording(
	ctx context.Context,
	account *domain.Account,
	sentence *domain.Sentence,
	recording *domain.Recording,
) (*domain.UploadSummary, error) {
	logger := s.logger.With("account_id", account.AccountID, "language", sentence.Language)
	summary := &domain.UploadSummary{
		AccountID: account.AccountID,
		Language:  sentence.Language,
	}
	startTime := time.Now()

	item := domain.UploadItem{Sentence: *sentence, Recording: *recording}
	err := s.process(ctx, logger, account, &item, summary)
	summary.Duration = time.Since(startTime)

	return summary, err
}

// RetryAll runs SyncPending for every account and language with outstanding
// recordings, including accounts whose contributor has logged out.
func (s *UploadService) RetryAll(ctx context.Context) (*domain.RetryStats, error) {
	startTime := time.Now()

	keys, err := s.sentences.ListOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outstanding: %w", err)
	}

	stats := &domain.RetryStats{Keys: len(keys)}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(startTime)
			return stats, fmt.Errorf("retry interrupted: %w", err)
		}

		account, err := s.accounts.GetByAccountID(ctx, key.AccountID)
		if errors.Is(err, domain.ErrNotFound) {
			account = &domain.Account{AccountID: key.AccountID}
		} else if err != nil {
			s.logger.Error("failed to load account", "account_id", key.AccountID, "error", err)
			stats.Errors++
			continue
		}

		summary, err := s.SyncPending(ctx, account, key.Language)
		stats.Succeeded += summary.Succeeded
		stats.Failed += summary.Failed
		if err != nil {
			s.logger.Error("sync stopped early",
				"account_id", key.AccountID,
				"language", key.Language,
				"error", err,
			)
			stats.Errors++
		}
	}

	stats.Duration = time.Since(startTime)

	return stats, nil
}

// process uploads one item and records its outcome. It returns an error only
// when the remaining items should not be attempted.
func (s *UploadService) process(
	ctx context.Context,
	logger *slog.Logger,
	account *domain.Account,
	item *domain.UploadItem,
	summary *domain.UploadSummary,
) error {
	summary.Attempted++

	logger = logger.With("sentence_id", item.Sentence.ID, "number", item.Sentence.SequenceNumber)

	err := s.uploadItem(ctx, logger, account, item)
	if err == nil {
		summary.Succeeded++
		return nil
	}

	summary.Failed++
	summary.Failures = append(summary.Failures, domain.ItemFailure{
		SentenceID:     item.Sentence.ID,
		SequenceNumber: item.Sentence.SequenceNumber,
		Detail:         domain.UserDetail(err),
	})

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("upload sentence #%d: %w", item.Sentence.SequenceNumber, err)
	}
	return nil
}

func (s *UploadService) uploadItem(
	ctx context.Context,
	logger *slog.Logger,
	account *domain.Account,
	item *domain.UploadItem,
) error {
	sentenceID := item.Sentence.ID

	audio, err := s.blobs.Fetch(ctx, item.Recording.BlobRef)
	if err != nil {
		var blobErr *domain.BlobFetchError
		if !errors.As(err, &blobErr) {
			err = &domain.BlobFetchError{Ref: item.Recording.BlobRef, Err: err}
		}
		return s.fail(ctx, logger, sentenceID, err)
	}

	receipt, err := s.corpus.UploadAudio(ctx, domain.UploadRequest{
		Audio:        audio,
		AccountID:    account.AccountID,
		Language:     item.Sentence.Language,
		SourceTextID: item.Sentence.SourceTextID,
		Text:         item.Sentence.Text,
		ContentHash:  item.Sentence.ContentHash,
		Demographics: account.Demographics,
	})
	if err != nil {
		return s.fail(ctx, logger, sentenceID, err)
	}

	// The remote side already accepted the clip; leave the local state for the
	// next sync instead of marking it failed.
	if err := s.machine.MarkUploaded(ctx, sentenceID); err != nil {
		logger.Error("failed to mark recording uploaded", "error", err)
		return fmt.Errorf("mark uploaded: %w", err)
	}

	logger.Debug("recording uploaded", "audio_id", receipt.AudioID)

	if s.publisher != nil {
		event := &domain.UploadEvent{
			AccountID:      account.AccountID,
			Language:       item.Sentence.Language,
			SentenceID:     sentenceID,
			SequenceNumber: item.Sentence.SequenceNumber,
			SourceTextID:   item.Sentence.SourceTextID,
			AudioID:        receipt.AudioID,
			UploadedAt:     time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Warn("failed to publish upload event", "error", err)
		}
	}

	return nil
}

func (s *UploadService) fail(ctx context.Context, logger *slog.Logger, sentenceID int64, cause error) error {
	detail := domain.UserDetail(cause)

	logger.Warn("upload failed", "error", cause, "detail", detail)

	if err := s.machine.MarkFailed(ctx, sentenceID, detail); err != nil {
		logger.Error("failed to mark recording failed", "error", err)
	}

	return cause
}
