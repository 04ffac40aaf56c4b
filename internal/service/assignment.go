package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"voice_courier/internal/config"
	"voice_courier/internal/domain"
)

type AssignmentTracker struct {
	accounts  AccountStore
	sentences SentenceStore
	corpus    CorpusAPI
	txManager TransactionManager
	logger    *slog.Logger
	languages map[string]string
	config    config.SentencesConfig
}

func NewAssignmentTracker(
	accounts AccountStore,
	sentences SentenceStore,
	corpus CorpusAPI,
	txManager TransactionManager,
	logger *slog.Logger,
	languages map[string]string,
	cfg config.SentencesConfig,
) *AssignmentTracker {
	return &AssignmentTracker{
		accounts:  accounts,
		sentences: sentences,
		corpus:    corpus,
		txManager: txManager,
		logger:    logger.With("component", "assignments"),
		languages: languages,
		config:    cfg,
	}
}

// Assign fetches up to count unseen sentences and stores them as the new
// active batch for the language. A zero count uses the configured default.
// An empty result leaves the current batch untouched.
func (t *AssignmentTracker) Assign(
	ctx context.Context,
	account *domain.Account,
	language string,
	count int,
) (*domain.Batch, error) {
	if count == 0 {
		count = t.config.Default
	}
	if count < 1 || count > t.config.Max {
		return nil, &domain.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("please choose between 1 and %d sentences", t.config.Max),
		}
	}
	if _, ok := t.languages[language]; !ok {
		return nil, &domain.ValidationError{Field: "language", Message: fmt.Sprintf("language %q is not supported", language)}
	}

	logger := t.logger.With("account_id", account.AccountID, "language", language)

	resolved, err := t.sentences.GetResolvedSourceIDs(ctx, account.AccountID, language)
	if err != nil {
		return nil, fmt.Errorf("get resolved sentences: %w", err)
	}

	exclude := make([]string, 0, len(resolved))
	for id := range resolved {
		exclude = append(exclude, id)
	}
	sort.Strings(exclude)

	candidates, err := t.corpus.FetchSentences(ctx, language, count, exclude)
	if err != nil {
		return nil, err
	}

	candidates = filterCandidates(candidates, resolved, count)

	batch := &domain.Batch{
		AccountID: account.AccountID,
		Language:  language,
		Requested: count,
	}

	if len(candidates) == 0 {
		logger.Info("no new sentences available", "excluded", len(exclude))
		return batch, nil
	}

	batch.ID = uuid.NewString()

	err = t.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		stored, err := t.sentences.ReplaceActiveBatch(txCtx, account.AccountID, language, batch.ID, candidates)
		if err != nil {
			return fmt.Errorf("replace active batch: %w", err)
		}
		batch.Sentences = stored

		if err := t.accounts.SetLanguage(txCtx, account.ContributorID, language); err != nil {
			return fmt.Errorf("set language: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	account.CurrentLanguage = language

	logger.Info("batch assigned",
		"batch_id", batch.ID,
		"requested", count,
		"assigned", len(batch.Sentences),
		"excluded", len(exclude),
	)

	return batch, nil
}

// ActiveBatch lists the unresolved sentences of the account's current language.
func (t *AssignmentTracker) ActiveBatch(ctx context.Context, account *domain.Account) ([]domain.Sentence, error) {
	if account.CurrentLanguage == "" {
		return nil, domain.ErrNoActiveLanguage
	}

	sentences, err := t.sentences.ListActive(ctx, account.AccountID, account.CurrentLanguage)
	if err != nil {
		return nil, fmt.Errorf("list active sentences: %w", err)
	}
	return sentences, nil
}

func filterCandidates(candidates []domain.SentenceCandidate, resolved map[string]struct{}, limit int) []domain.SentenceCandidate {
	seen := make(map[string]struct{}, len(candidates))
	filtered := make([]domain.SentenceCandidate, 0, len(candidates))

	for _, c := range candidates {
		if _, ok := resolved[c.SourceTextID]; ok {
			continue
		}
		if _, ok := seen[c.SourceTextID]; ok {
			continue
		}
		seen[c.SourceTextID] = struct{}{}
		filtered = append(filtered, c)

		if len(filtered) == limit {
			break
		}
	}

	return filtered
}
