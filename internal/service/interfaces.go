package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"voice_courier/internal/domain"
)

type AccountStore interface {
	Save(ctx context.Context, account *domain.Account) error
	GetByContributor(ctx context.Context, contributorID int64) (*domain.Account, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error)
	SetLanguage(ctx context.Context, contributorID int64, language string) error
	Delete(ctx context.Context, contributorID int64) error
}

type SentenceStore interface {
	GetResolvedSourceIDs(ctx context.Context, accountID, language string) (map[string]struct{}, error)
	ReplaceActiveBatch(ctx context.Context, accountID, language, batchID string, candidates []domain.SentenceCandidate) ([]domain.Sentence, error)
	GetActiveByNumber(ctx context.Context, accountID, language string, number int) (*domain.Sentence, error)
	GetByID(ctx context.Context, id int64) (*domain.Sentence, error)
	ListActive(ctx context.Context, accountID, language string) ([]domain.Sentence, error)
	CountActive(ctx context.Context, accountID, language string) (int, error)
	SetStatus(ctx context.Context, id int64, status domain.SentenceStatus) error
	ListOutstanding(ctx context.Context) ([]domain.WorkKey, error)
}

type RecordingStore interface {
	Upsert(ctx context.Context, sentenceID int64, blobRef string) (*domain.Recording, error)
	Get(ctx context.Context, sentenceID int64) (*domain.Recording, error)
	ListByStatus(ctx context.Context, accountID, language string, statuses []domain.RecordingStatus) ([]domain.UploadItem, error)
	SetStatus(ctx context.Context, sentenceID int64, status domain.RecordingStatus, detail string) error
	Stats(ctx context.Context, accountID, language string) (*domain.RecordingStats, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CorpusAPI interface {
	CreateOrClaimAccount(ctx context.Context, email, username string) (string, error)
	FetchSentences(ctx context.Context, language string, limit int, exclude []string) ([]domain.SentenceCandidate, error)
	UploadAudio(ctx context.Context, upload domain.UploadRequest) (*domain.UploadReceipt, error)
}

type BlobFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.UploadEvent) error
	Close() error
}
