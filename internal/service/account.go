package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voice_courier/internal/domain"
)

type AccountService struct {
	accounts   AccountStore
	recordings RecordingStore
	corpus     CorpusAPI
	logger     *slog.Logger
}

func NewAccountService(
	accounts AccountStore,
	recordings RecordingStore,
	corpus CorpusAPI,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts:   accounts,
		recordings: recordings,
		corpus:     corpus,
		logger:     logger.With("component", "accounts"),
	}
}

// Register links a contributor handle to a corpus-service account, creating
// the account remotely or claiming the existing one for the same email.
func (s *AccountService) Register(
	ctx context.Context,
	contributorID int64,
	email, username string,
	demographics domain.Demographics,
) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len([]rune(username)) < 2 {
		return nil, &domain.ValidationError{Field: "username", Message: "username must be at least 2 characters"}
	}

	existing, err := s.accounts.GetByContributor(ctx, contributorID)
	switch {
	case err == nil:
		return existing, domain.ErrAlreadyRegistered
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get account: %w", err)
	}

	accountID, err := s.corpus.CreateOrClaimAccount(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("create or claim account: %w", err)
	}

	account := &domain.Account{
		ContributorID: contributorID,
		AccountID:     accountID,
		Email:         email,
		Username:      username,
		Demographics:  demographics,
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	s.logger.Info("contributor registered", "contributor_id", contributorID, "account_id", accountID)

	return account, nil
}

func (s *AccountService) Get(ctx context.Context, contributorID int64) (*domain.Account, error) {
	account, err := s.accounts.GetByContributor(ctx, contributorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// Logout removes the contributor mapping. Sentence history stays with the
// external account so a later login keeps its dedup set.
func (s *AccountService) Logout(ctx context.Context, contributorID int64, force bool) error {
	account, err := s.Get(ctx, contributorID)
	if err != nil {
		return err
	}

	if !force && account.CurrentLanguage != "" {
		stats, err := s.recordings.Stats(ctx, account.AccountID, account.CurrentLanguage)
		if err != nil {
			return fmt.Errorf("recording stats: %w", err)
		}
		if stats.Pending+stats.Failed > 0 {
			return domain.ErrPendingUploads
		}
	}

	if err := s.accounts.Delete(ctx, contributorID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info("contributor logged out", "contributor_id", contributorID, "account_id", account.AccountID)

	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return &domain.ValidationError{Field: "email", Message: "that doesn't look like a valid email"}
	}
	return nil
}
