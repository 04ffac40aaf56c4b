package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"voice_courier/internal/domain"
	"voice_courier/internal/service"
	"voice_courier/internal/storage/txn"
)

type SQLiteStoreSuite struct {
	suite.Suite
	ctx  context.Context
	path string
	db   *sqlx.DB

	accounts   *AccountStore
	sentences  *SentenceStore
	recordings *RecordingStore
	txManager  *txn.Manager
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "nested", "courier.db")

	db, err := Open(s.ctx, s.path)
	s.Require().NoError(err)
	s.db = db

	s.accounts = NewAccountStore(db)
	s.sentences = NewSentenceStore(db)
	s.recordings = NewRecordingStore(db)
	s.txManager = txn.NewManager(db)
}

func (s *SQLiteStoreSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func candidates(ids ...string) []domain.SentenceCandidate {
	result := make([]domain.SentenceCandidate, len(ids))
	for i, id := range ids {
		result[i] = domain.SentenceCandidate{SourceTextID: id, Text: "text " + id, ContentHash: "hash-" + id}
	}
	return result
}

func (s *SQLiteStoreSuite) replace(accountID, language, batchID string, ids ...string) []domain.Sentence {
	var stored []domain.Sentence
	err := s.txManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.sentences.ReplaceActiveBatch(ctx, accountID, language, batchID, candidates(ids...))
		return err
	})
	s.Require().NoError(err)
	return stored
}

func (s *SQLiteStoreSuite) TestOpen_ReappliesNothing() {
	s.db.Close()

	db, err := Open(s.ctx, s.path)
	s.Require().NoError(err)
	s.db = db

	var count int
	s.Require().NoError(db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM schema_migrations"))
	s.Equal(1, count)
}

func (s *SQLiteStoreSuite) TestAccountStore_Lifecycle() {
	account := &domain.Account{
		ContributorID: 42,
		AccountID:     "cv-1",
		Email:         "ada@example.org",
		Username:      "ada",
		Demographics:  domain.Demographics{Age: "30-39", Gender: "female"},
	}
	s.Require().NoError(s.accounts.Save(s.ctx, account))
	s.False(account.CreatedAt.IsZero())

	s.Require().NoError(s.accounts.SetLanguage(s.ctx, 42, "en"))

	got, err := s.accounts.GetByContributor(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal("cv-1", got.AccountID)
	s.Equal("en", got.CurrentLanguage)
	s.Equal("female", got.Demographics.Gender)

	byAccount, err := s.accounts.GetByAccountID(s.ctx, "cv-1")
	s.Require().NoError(err)
	s.Equal(int64(42), byAccount.ContributorID)

	s.Require().NoError(s.accounts.Delete(s.ctx, 42))

	_, err = s.accounts.GetByContributor(s.ctx, 42)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.accounts.Delete(s.ctx, 42), domain.ErrNotFound)
	s.ErrorIs(s.accounts.SetLanguage(s.ctx, 42, "uk"), domain.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestReplaceActiveBatch_NumbersInResponseOrder() {
	stored := s.replace("cv-1", "en", "b-1", "t-9", "t-3", "t-5")

	s.Require().Len(stored, 3)
	for i, sentence := range stored {
		s.Equal(i+1, sentence.SequenceNumber)
		s.Equal("b-1", sentence.BatchID)
		s.Equal(domain.SentenceActive, sentence.Status)
	}
	s.Equal("t-3", stored[1].SourceTextID)

	second, err := s.sentences.GetActiveByNumber(s.ctx, "cv-1", "en", 2)
	s.Require().NoError(err)
	s.Equal(stored[1].ID, second.ID)

	_, err = s.sentences.GetActiveByNumber(s.ctx, "cv-1", "en", 4)
	s.ErrorIs(err, domain.ErrNotFound)

	count, err := s.sentences.CountActive(s.ctx, "cv-1", "en")
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *SQLiteStoreSuite) TestResolvedSentencesFormDedupSet() {
	stored := s.replace("cv-1", "en", "b-1", "t-1", "t-2", "t-3")

	_, err := s.recordings.Upsert(s.ctx, stored[0].ID, "blob-1")
	s.Require().NoError(err)
	s.Require().NoError(s.sentences.SetStatus(s.ctx, stored[0].ID, domain.SentenceUploaded))
	s.Require().NoError(s.sentences.SetStatus(s.ctx, stored[1].ID, domain.SentenceSkipped))

	s.replace("cv-1", "en", "b-2", "t-4")

	resolved, err := s.sentences.GetResolvedSourceIDs(s.ctx, "cv-1", "en")
	s.Require().NoError(err)
	s.Equal(map[string]struct{}{"t-1": {}, "t-2": {}}, resolved)

	other, err := s.sentences.GetResolvedSourceIDs(s.ctx, "cv-1", "uk")
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *SQLiteStoreSuite) TestReplaceActiveBatch_SupersedesUnresolved() {
	first := s.replace("cv-1", "en", "b-1", "t-1", "t-2", "t-3")
	_, err := s.recordings.Upsert(s.ctx, first[0].ID, "blob-1")
	s.Require().NoError(err)

	second := s.replace("cv-1", "en", "b-2", "t-1", "t-4")

	active, err := s.sentences.ListActive(s.ctx, "cv-1", "en")
	s.Require().NoError(err)
	s.Equal(second, active)

	_, err = s.recordings.Get(s.ctx, first[0].ID)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.sentences.GetByID(s.ctx, first[0].ID)
	s.ErrorIs(err, domain.ErrNotFound)

	resolved, err := s.sentences.GetResolvedSourceIDs(s.ctx, "cv-1", "en")
	s.Require().NoError(err)
	s.Empty(resolved)
}

func (s *SQLiteStoreSuite) TestRecordingUpsert_ReplacesBlob() {
	stored := s.replace("cv-1", "en", "b-1", "t-1")
	id := stored[0].ID

	_, err := s.recordings.Upsert(s.ctx, id, "blob-a")
	s.Require().NoError(err)
	s.Require().NoError(s.recordings.SetStatus(s.ctx, id, domain.RecordingFailed, "too quiet"))

	recording, err := s.recordings.Upsert(s.ctx, id, "blob-b")
	s.Require().NoError(err)
	s.Equal("blob-b", recording.BlobRef)
	s.Equal(domain.RecordingPending, recording.Status)
	s.Empty(recording.ErrorDetail)
	s.Nil(recording.UploadedAt)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM recordings WHERE sentence_id = ?", id))
	s.Equal(1, count)
}

func (s *SQLiteStoreSuite) TestSentenceSetStatus_ForwardOnly() {
	stored := s.replace("cv-1", "en", "b-1", "t-1")
	id := stored[0].ID

	s.Require().NoError(s.sentences.SetStatus(s.ctx, id, domain.SentenceSkipped))
	s.ErrorIs(s.sentences.SetStatus(s.ctx, id, domain.SentenceUploaded), domain.ErrSentenceResolved)
	s.ErrorIs(s.sentences.SetStatus(s.ctx, 9999, domain.SentenceUploaded), domain.ErrNotFound)

	got, err := s.sentences.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.SentenceSkipped, got.Status)
}

func (s *SQLiteStoreSuite) TestListByStatus_StatsAndOutstanding() {
	stored := s.replace("cv-1", "en", "b-1", "t-1", "t-2", "t-3", "t-4")
	s.replace("cv-2", "uk", "b-9", "t-1")

	for _, sentence := range stored[:3] {
		_, err := s.recordings.Upsert(s.ctx, sentence.ID, "blob")
		s.Require().NoError(err)
	}
	s.Require().NoError(s.recordings.SetStatus(s.ctx, stored[1].ID, domain.RecordingFailed, "bad hash"))
	s.Require().NoError(s.sentences.SetStatus(s.ctx, stored[2].ID, domain.SentenceUploaded))
	s.Require().NoError(s.recordings.SetStatus(s.ctx, stored[2].ID, domain.RecordingUploaded, ""))
	s.Require().NoError(s.sentences.SetStatus(s.ctx, stored[3].ID, domain.SentenceSkipped))

	items, err := s.recordings.ListByStatus(s.ctx, "cv-1", "en",
		[]domain.RecordingStatus{domain.RecordingPending, domain.RecordingFailed})
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(1, items[0].Sentence.SequenceNumber)
	s.Equal(domain.RecordingPending, items[0].Recording.Status)
	s.Equal("bad hash", items[1].Recording.ErrorDetail)
	s.Equal("t-2", items[1].Sentence.SourceTextID)

	stats, err := s.recordings.Stats(s.ctx, "cv-1", "en")
	s.Require().NoError(err)
	s.Equal(domain.RecordingStats{Sentences: 4, Recorded: 3, Pending: 1, Uploaded: 1, Failed: 1, Skipped: 1}, *stats)

	uploaded, err := s.recordings.Get(s.ctx, stored[2].ID)
	s.Require().NoError(err)
	s.NotNil(uploaded.UploadedAt)

	keys, err := s.sentences.ListOutstanding(s.ctx)
	s.Require().NoError(err)
	s.Equal([]domain.WorkKey{{AccountID: "cv-1", Language: "en"}}, keys)
}

func (s *SQLiteStoreSuite) TestTransaction_Rollback() {
	stored := s.replace("cv-1", "en", "b-1", "t-1")
	id := stored[0].ID
	_, err := s.recordings.Upsert(s.ctx, id, "blob")
	s.Require().NoError(err)

	err = s.txManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.sentences.SetStatus(ctx, id, domain.SentenceUploaded); err != nil {
			return err
		}
		return s.recordings.SetStatus(ctx, 9999, domain.RecordingUploaded, "")
	})
	s.ErrorIs(err, domain.ErrNotFound)

	sentence, err := s.sentences.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.SentenceActive, sentence.Status)
}

func (s *SQLiteStoreSuite) TestRecordingService_MarkUploadedPairsStatuses() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	machine := service.NewRecordingService(s.sentences, s.recordings, s.txManager, logger)

	stored := s.replace("cv-1", "en", "b-1", "t-1", "t-2")
	id := stored[0].ID

	_, err := machine.SubmitAudio(s.ctx, id, "blob-a")
	s.Require().NoError(err)
	s.Require().NoError(machine.MarkUploaded(s.ctx, id))

	sentence, err := s.sentences.GetByID(s.ctx, id)
	s.Require().NoError(err)
	recording, err := s.recordings.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.SentenceUploaded, sentence.Status)
	s.Equal(domain.RecordingUploaded, recording.Status)

	_, err = machine.SubmitAudio(s.ctx, id, "blob-b")
	s.ErrorIs(err, domain.ErrSentenceResolved)

	s.Require().NoError(machine.MarkSkipped(s.ctx, stored[1].ID))
	_, err = s.recordings.Get(s.ctx, stored[1].ID)
	s.ErrorIs(err, domain.ErrNotFound)
}
