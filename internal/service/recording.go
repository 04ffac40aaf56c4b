package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"voice_courier/internal/domain"
)

// RecordingService drives the per-sentence recording lifecycle. Sentence and
// recording status changes that must be observed together run in one
// transaction.
type RecordingService struct {
	sentences  SentenceStore
	recordings RecordingStore
	txManager  TransactionManager
	logger     *slog.Logger
}

// ProgressItem is one active sentence together with its recording status.
type ProgressItem struct {
	Sentence domain.Sentence
	Status   domain.RecordingStatus
	Detail   string
}

func NewRecordingService(
	sentences SentenceStore,
	recordings RecordingStore,
	txManager TransactionManager,
	logger *slog.Logger,
) *RecordingService {
	return &RecordingService{
		sentences:  sentences,
		recordings: recordings,
		txManager:  txManager,
		logger:     logger.With("component", "recordings"),
	}
}

// SubmitAudio attaches audio to a sentence. Resubmitting replaces the previous
// blob and resets the recording to pending.
func (s *RecordingService) SubmitAudio(ctx context.Context, sentenceID int64, blobRef string) (*domain.Recording, error) {
	sentence, err := s.sentences.GetByID(ctx, sentenceID)
	if err != nil {
		return nil, fmt.Errorf("get sentence: %w", err)
	}
	if sentence.Status.Resolved() {
		return nil, domain.ErrSentenceResolved
	}

	current, err := s.currentStatus(ctx, sentenceID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(current, domain.RecordingPending); err != nil {
		return nil, err
	}

	recording, err := s.recordings.Upsert(ctx, sentenceID, blobRef)
	if err != nil {
		return nil, fmt.Errorf("upsert recording: %w", err)
	}

	s.logger.Debug("audio submitted", "sentence_id", sentenceID, "previous", current)

	return recording, nil
}

// SubmitByNumber resolves a batch position to its sentence and submits audio for it.
func (s *RecordingService) SubmitByNumber(
	ctx context.Context,
	account *domain.Account,
	number int,
	blobRef string,
) (*domain.Sentence, *domain.Recording, error) {
	sentence, err := s.activeByNumber(ctx, account, number)
	if err != nil {
		return nil, nil, err
	}

	recording, err := s.SubmitAudio(ctx, sentence.ID, blobRef)
	if err != nil {
		return nil, nil, err
	}

	return sentence, recording, nil
}

// MarkUploaded resolves both the recording and its sentence as uploaded.
func (s *RecordingService) MarkUploaded(ctx context.Context, sentenceID int64) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.currentStatus(txCtx, sentenceID)
		if err != nil {
			return err
		}
		if err := domain.CheckTransition(current, domain.RecordingUploaded); err != nil {
			return err
		}

		if err := s.sentences.SetStatus(txCtx, sentenceID, domain.SentenceUploaded); err != nil {
			return fmt.Errorf("set sentence status: %w", err)
		}
		if err := s.recordings.SetStatus(txCtx, sentenceID, domain.RecordingUploaded, ""); err != nil {
			return fmt.Errorf("set recording status: %w", err)
		}
		return nil
	})
}

// MarkFailed records a failed upload. The sentence stays active so the
// recording is picked up by the next sync.
func (s *RecordingService) MarkFailed(ctx context.Context, sentenceID int64, detail string) error {
	current, err := s.currentStatus(ctx, sentenceID)
	if err != nil {
		return err
	}
	if err := domain.CheckTransition(current, domain.RecordingFailed); err != nil {
		return err
	}

	if err := s.recordings.SetStatus(ctx, sentenceID, domain.RecordingFailed, detail); err != nil {
		return fmt.Errorf("set recording status: %w", err)
	}
	return nil
}

// MarkSkipped resolves the sentence as skipped, with or without audio.
func (s *RecordingService) MarkSkipped(ctx context.Context, sentenceID int64) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sentences.SetStatus(txCtx, sentenceID, domain.SentenceSkipped); err != nil {
			return fmt.Errorf("set sentence status: %w", err)
		}

		current, err := s.currentStatus(txCtx, sentenceID)
		if err != nil {
			return err
		}
		if current == domain.RecordingAbsent {
			return nil
		}
		if err := domain.CheckTransition(current, domain.RecordingSkipped); err != nil {
			return err
		}
		if err := s.recordings.SetStatus(txCtx, sentenceID, domain.RecordingSkipped, ""); err != nil {
			return fmt.Errorf("set recording status: %w", err)
		}
		return nil
	})
}

func (s *RecordingService) SkipByNumber(ctx context.Context, account *domain.Account, number int) (*domain.Sentence, error) {
	sentence, err := s.activeByNumber(ctx, account, number)
	if err != nil {
		return nil, err
	}

	if err := s.MarkSkipped(ctx, sentence.ID); err != nil {
		return nil, err
	}

	return sentence, nil
}

func (s *RecordingService) Stats(ctx context.Context, account *domain.Account) (*domain.RecordingStats, error) {
	if account.CurrentLanguage == "" {
		return nil, domain.ErrNoActiveLanguage
	}

	stats, err := s.recordings.Stats(ctx, account.AccountID, account.CurrentLanguage)
	if err != nil {
		return nil, fmt.Errorf("recording stats: %w", err)
	}
	return stats, nil
}

// Progress lists the active sentences of the current batch and where each
// one stands.
func (s *RecordingService) Progress(ctx context.Context, account *domain.Account) ([]ProgressItem, error) {
	if account.CurrentLanguage == "" {
		return nil, domain.ErrNoActiveLanguage
	}

	sentences, err := s.sentences.ListActive(ctx, account.AccountID, account.CurrentLanguage)
	if err != nil {
		return nil, fmt.Errorf("list active sentences: %w", err)
	}

	items := make([]ProgressItem, 0, len(sentences))
	for _, sentence := range sentences {
		item := ProgressItem{Sentence: sentence}

		recording, err := s.recordings.Get(ctx, sentence.ID)
		switch {
		case err == nil:
			item.Status = recording.Status
			item.Detail = recording.ErrorDetail
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get recording: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *RecordingService) activeByNumber(ctx context.Context, account *domain.Account, number int) (*domain.Sentence, error) {
	if account.CurrentLanguage == "" {
		return nil, domain.ErrNoActiveLanguage
	}

	sentence, err := s.sentences.GetActiveByNumber(ctx, account.AccountID, account.CurrentLanguage, number)
	if err == nil {
		return sentence, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get sentence #%d: %w", number, err)
	}

	total, err := s.sentences.CountActive(ctx, account.AccountID, account.CurrentLanguage)
	if err != nil {
		return nil, fmt.Errorf("count active sentences: %w", err)
	}

	msg := fmt.Sprintf("sentence #%d not found; you have no active sentences", number)
	if total > 0 {
		msg = fmt.Sprintf("sentence #%d not found; you have sentences #1-#%d", number, total)
	}
	return nil, &domain.ValidationError{Field: "number", Message: msg}
}

func (s *RecordingService) currentStatus(ctx context.Context, sentenceID int64) (domain.RecordingStatus, error) {
	recording, err := s.recordings.Get(ctx, sentenceID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RecordingAbsent, nil
	}
	if err != nil {
		return "", fmt.Errorf("get recording: %w", err)
	}
	return recording.Status, nil
}
