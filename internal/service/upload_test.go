package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voice_courier/internal/domain"
	"voice_courier/internal/service/mocks"
)

type UploadServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	accounts   *mocks.MockAccountStore
	sentences  *mocks.MockSentenceStore
	recordings *mocks.MockRecordingStore
	txManager  *mocks.MockTransactionManager
	corpus     *mocks.MockCorpusAPI
	blobs      *mocks.MockBlobFetcher
	publisher  *mocks.MockPublisher

	service *UploadService
	account *domain.Account
}

func (s *UploadServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.accounts = mocks.NewMockAccountStore(s.ctrl)
	s.sentences = mocks.NewMockSentenceStore(s.ctrl)
	s.recordings = mocks.NewMockRecordingStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.corpus = mocks.NewMockCorpusAPI(s.ctrl)
	s.blobs = mocks.NewMockBlobFetcher(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	machine := NewRecordingService(s.sentences, s.recordings, s.txManager, logger)
	s.service = NewUploadService(
		s.accounts,
		s.sentences,
		s.recordings,
		machine,
		s.corpus,
		s.blobs,
		s.publisher,
		logger,
	)

	s.account = &domain.Account{
		ContributorID:   42,
		AccountID:       "cv-1",
		CurrentLanguage: "en",
		Demographics:    domain.Demographics{Gender: "female"},
	}

	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx).AnyTimes()
}

func (s *UploadServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestUploadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UploadServiceTestSuite))
}

func pendingItems(n int) []domain.UploadItem {
	items := make([]domain.UploadItem, n)
	for i := range items {
		id := int64(i + 1)
		items[i] = domain.UploadItem{
			Sentence: domain.Sentence{
				ID:             id,
				AccountID:      "cv-1",
				Language:       "en",
				SequenceNumber: i + 1,
				SourceTextID:   fmt.Sprintf("t-%d", id),
				Text:           fmt.Sprintf("sentence %d", id),
				ContentHash:    fmt.Sprintf("h-%d", id),
				Status:         domain.SentenceActive,
			},
			Recording: domain.Recording{
				SentenceID: id,
				BlobRef:    fmt.Sprintf("blob-%d", id),
				Status:     domain.RecordingPending,
			},
		}
	}
	return items
}

func (s *UploadServiceTestSuite) expectUploaded(ctx context.Context, id int64) {
	s.recordings.EXPECT().Get(ctx, id).Return(&domain.Recording{SentenceID: id, Status: domain.RecordingPending}, nil)
	s.sentences.EXPECT().SetStatus(ctx, id, domain.SentenceUploaded).Return(nil)
	s.recordings.EXPECT().SetStatus(ctx, id, domain.RecordingUploaded, "").Return(nil)
}

func (s *UploadServiceTestSuite) expectFailed(ctx context.Context, id int64, detail string) {
	s.recordings.EXPECT().Get(ctx, id).Return(&domain.Recording{SentenceID: id, Status: domain.RecordingPending}, nil)
	s.recordings.EXPECT().SetStatus(ctx, id, domain.RecordingFailed, detail).Return(nil)
}

func (s *UploadServiceTestSuite) TestSyncPending_PartialFailure() {
	ctx := context.Background()
	items := pendingItems(5)

	s.recordings.EXPECT().
		ListByStatus(ctx, "cv-1", "en", []domain.RecordingStatus{domain.RecordingPending, domain.RecordingFailed}).
		Return(items, nil)

	for _, item := range items {
		s.blobs.EXPECT().Fetch(ctx, item.Recording.BlobRef).Return([]byte("ogg"), nil)
	}

	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.UploadRequest) (*domain.UploadReceipt, error) {
			s.Equal("cv-1", req.AccountID)
			s.Equal("female", req.Demographics.Gender)
			if req.SourceTextID == "t-3" {
				return nil, &domain.APIError{Op: "upload audio", StatusCode: 400, Detail: "hash mismatch"}
			}
			return &domain.UploadReceipt{AudioID: "a-" + req.SourceTextID}, nil
		},
	).Times(5)

	for _, id := range []int64{1, 2, 4, 5} {
		s.expectUploaded(ctx, id)
	}
	s.expectFailed(ctx, 3, "hash mismatch")

	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(4)

	summary, err := s.service.SyncPending(ctx, s.account, "en")

	s.Require().NoError(err)
	s.Equal(5, summary.Attempted)
	s.Equal(4, summary.Succeeded)
	s.Equal(1, summary.Failed)
	s.Require().Len(summary.Failures, 1)
	s.Equal(domain.ItemFailure{SentenceID: 3, SequenceNumber: 3, Detail: "hash mismatch"}, summary.Failures[0])
}

func (s *UploadServiceTestSuite) TestSyncPending_BlobAndNetworkErrors() {
	ctx := context.Background()
	items := pendingItems(2)

	s.recordings.EXPECT().ListByStatus(ctx, "cv-1", "en", gomock.Any()).Return(items, nil)

	s.blobs.EXPECT().Fetch(ctx, "blob-1").Return(nil, errors.New("file expired"))
	s.expectFailed(ctx, 1, "recorded audio is no longer available")

	s.blobs.EXPECT().Fetch(ctx, "blob-2").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).Return(nil, errors.New("dial tcp: i/o timeout"))
	s.expectFailed(ctx, 2, "upload failed: network error, will retry later")

	summary, err := s.service.SyncPending(ctx, s.account, "en")

	s.Require().NoError(err)
	s.Equal(0, summary.Succeeded)
	s.Equal(2, summary.Failed)
}

func (s *UploadServiceTestSuite) TestSyncPending_AuthErrorStopsBatch() {
	ctx := context.Background()
	items := pendingItems(3)
	authErr := &domain.AuthError{StatusCode: 401, Detail: "invalid client"}

	s.recordings.EXPECT().ListByStatus(ctx, "cv-1", "en", gomock.Any()).Return(items, nil)
	s.blobs.EXPECT().Fetch(ctx, "blob-1").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).Return(nil, authErr)
	s.expectFailed(ctx, 1, "invalid client")

	summary, err := s.service.SyncPending(ctx, s.account, "en")

	s.ErrorIs(err, authErr)
	s.Equal(1, summary.Attempted)
	s.Equal(1, summary.Failed)
}

func (s *UploadServiceTestSuite) TestSyncPending_Cancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	items := pendingItems(2)

	s.recordings.EXPECT().ListByStatus(ctx, "cv-1", "en", gomock.Any()).Return(items, nil)
	s.blobs.EXPECT().Fetch(ctx, "blob-1").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).DoAndReturn(
		func(context.Context, domain.UploadRequest) (*domain.UploadReceipt, error) {
			cancel()
			return &domain.UploadReceipt{AudioID: "a-1"}, nil
		},
	)
	s.expectUploaded(ctx, 1)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	summary, err := s.service.SyncPending(ctx, s.account, "en")

	s.ErrorIs(err, context.Canceled)
	s.Equal(1, summary.Succeeded)
	s.Equal(1, summary.Attempted)
}

func (s *UploadServiceTestSuite) TestSyncPending_MarkUploadedFailure() {
	ctx := context.Background()
	items := pendingItems(1)

	s.recordings.EXPECT().ListByStatus(ctx, "cv-1", "en", gomock.Any()).Return(items, nil)
	s.blobs.EXPECT().Fetch(ctx, "blob-1").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).Return(&domain.UploadReceipt{}, nil)
	s.recordings.EXPECT().Get(ctx, int64(1)).Return(&domain.Recording{Status: domain.RecordingPending}, nil)
	s.sentences.EXPECT().SetStatus(ctx, int64(1), domain.SentenceUploaded).Return(errors.New("database is locked"))

	summary, err := s.service.SyncPending(ctx, s.account, "en")

	s.Require().NoError(err)
	s.Equal(1, summary.Failed)
}

func (s *UploadServiceTestSuite) TestUploadRecording() {
	ctx := context.Background()
	sentence := &domain.Sentence{ID: 7, Language: "en", SequenceNumber: 3, SourceTextID: "t-7", Status: domain.SentenceActive}
	recording := &domain.Recording{SentenceID: 7, BlobRef: "blob-7", Status: domain.RecordingPending}

	s.blobs.EXPECT().Fetch(ctx, "blob-7").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).Return(&domain.UploadReceipt{AudioID: "a-7"}, nil)
	s.expectUploaded(ctx, 7)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.UploadEvent) error {
			s.Equal("a-7", event.AudioID)
			s.Equal(3, event.SequenceNumber)
			return nil
		},
	)

	summary, err := s.service.UploadRecording(ctx, s.account, sentence, recording)

	s.Require().NoError(err)
	s.Equal(1, summary.Succeeded)
	s.Equal("en", summary.Language)
}

func (s *UploadServiceTestSuite) TestUploadRecording_BlobStoreUnreachable() {
	ctx := context.Background()
	sentence := &domain.Sentence{ID: 4, Language: "en", SequenceNumber: 2, Status: domain.SentenceActive}
	recording := &domain.Recording{SentenceID: 4, BlobRef: "cv-1/4.ogg", Status: domain.RecordingPending}
	dialErr := &url.Error{Op: "Get", URL: "http://127.0.0.1:1/recordings/cv-1/4.ogg", Err: errors.New("connection refused")}

	s.blobs.EXPECT().Fetch(ctx, "cv-1/4.ogg").Return(nil, &domain.BlobFetchError{Ref: "cv-1/4.ogg", Err: dialErr})
	s.expectFailed(ctx, 4, "upload failed: network error, will retry later")

	summary, err := s.service.UploadRecording(ctx, s.account, sentence, recording)

	s.Require().NoError(err)
	s.Equal(1, summary.Attempted)
	s.Equal(1, summary.Failed)
	s.Equal(2, summary.Failures[0].SequenceNumber)
}

func (s *UploadServiceTestSuite) TestRetryAll() {
	ctx := context.Background()
	keys := []domain.WorkKey{
		{AccountID: "cv-1", Language: "en"},
		{AccountID: "cv-gone", Language: "uk"},
	}

	s.sentences.EXPECT().ListOutstanding(ctx).Return(keys, nil)
	s.accounts.EXPECT().GetByAccountID(ctx, "cv-1").Return(s.account, nil)
	s.accounts.EXPECT().GetByAccountID(ctx, "cv-gone").Return(nil, domain.ErrNotFound)

	s.recordings.EXPECT().ListByStatus(ctx, "cv-1", "en", gomock.Any()).Return(pendingItems(1), nil)
	s.blobs.EXPECT().Fetch(ctx, "blob-1").Return([]byte("ogg"), nil)
	s.corpus.EXPECT().UploadAudio(ctx, gomock.Any()).Return(&domain.UploadReceipt{AudioID: "a-1"}, nil)
	s.expectUploaded(ctx, 1)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("channel closed"))

	s.recordings.EXPECT().ListByStatus(ctx, "cv-gone", "uk", gomock.Any()).Return(nil, errors.New("db down"))

	stats, err := s.service.RetryAll(ctx)

	s.Require().NoError(err)
	s.Equal(2, stats.Keys)
	s.Equal(1, stats.Succeeded)
	s.Equal(0, stats.Failed)
	s.Equal(1, stats.Errors)
}
