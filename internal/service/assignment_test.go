package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voice_courier/internal/config"
	"voice_courier/internal/domain"
	"voice_courier/internal/service/mocks"
)

type AssignmentTrackerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	accounts  *mocks.MockAccountStore
	sentences *mocks.MockSentenceStore
	corpus    *mocks.MockCorpusAPI
	txManager *mocks.MockTransactionManager

	tracker *AssignmentTracker
	account *domain.Account
}

func (s *AssignmentTrackerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.accounts = mocks.NewMockAccountStore(s.ctrl)
	s.sentences = mocks.NewMockSentenceStore(s.ctrl)
	s.corpus = mocks.NewMockCorpusAPI(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.tracker = NewAssignmentTracker(
		s.accounts,
		s.sentences,
		s.corpus,
		s.txManager,
		logger,
		map[string]string{"en": "English", "uk": "Ukrainian"},
		config.SentencesConfig{Max: 100, Default: 10},
	)
	s.account = &domain.Account{ContributorID: 42, AccountID: "cv-1"}
}

func (s *AssignmentTrackerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAssignmentTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentTrackerTestSuite))
}

func runInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (s *AssignmentTrackerTestSuite) TestAssign_ExcludesResolved() {
	ctx := context.Background()
	resolved := map[string]struct{}{"t-2": {}, "t-1": {}}
	candidates := []domain.SentenceCandidate{
		{SourceTextID: "t-3", Text: "three", ContentHash: "h3"},
		{SourceTextID: "t-4", Text: "four", ContentHash: "h4"},
	}
	stored := []domain.Sentence{
		{ID: 10, SequenceNumber: 1, SourceTextID: "t-3"},
		{ID: 11, SequenceNumber: 2, SourceTextID: "t-4"},
	}

	s.sentences.EXPECT().GetResolvedSourceIDs(ctx, "cv-1", "en").Return(resolved, nil)
	s.corpus.EXPECT().FetchSentences(ctx, "en", 5, []string{"t-1", "t-2"}).Return(candidates, nil)
	s.txManager.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(runInTx)
	s.sentences.EXPECT().ReplaceActiveBatch(ctx, "cv-1", "en", gomock.Any(), candidates).Return(stored, nil)
	s.accounts.EXPECT().SetLanguage(ctx, int64(42), "en").Return(nil)

	batch, err := s.tracker.Assign(ctx, s.account, "en", 5)

	s.Require().NoError(err)
	s.NotEmpty(batch.ID)
	s.Equal(5, batch.Requested)
	s.Equal(stored, batch.Sentences)
	s.False(batch.Exhausted())
	s.Equal("en", s.account.CurrentLanguage)
}

func (s *AssignmentTrackerTestSuite) TestAssign_DropsResolvedAndDuplicateCandidates() {
	ctx := context.Background()
	resolved := map[string]struct{}{"t-1": {}}
	candidates := []domain.SentenceCandidate{
		{SourceTextID: "t-1", Text: "one"},
		{SourceTextID: "t-2", Text: "two"},
		{SourceTextID: "t-2", Text: "two again"},
		{SourceTextID: "t-3", Text: "three"},
		{SourceTextID: "t-4", Text: "four"},
	}
	want := []domain.SentenceCandidate{
		{SourceTextID: "t-2", Text: "two"},
		{SourceTextID: "t-3", Text: "three"},
	}

	s.sentences.EXPECT().GetResolvedSourceIDs(ctx, "cv-1", "en").Return(resolved, nil)
	s.corpus.EXPECT().FetchSentences(ctx, "en", 2, []string{"t-1"}).Return(candidates, nil)
	s.txManager.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(runInTx)
	s.sentences.EXPECT().ReplaceActiveBatch(ctx, "cv-1", "en", gomock.Any(), want).
		Return([]domain.Sentence{{ID: 1}, {ID: 2}}, nil)
	s.accounts.EXPECT().SetLanguage(ctx, int64(42), "en").Return(nil)

	batch, err := s.tracker.Assign(ctx, s.account, "en", 2)

	s.Require().NoError(err)
	s.Len(batch.Sentences, 2)
}

func (s *AssignmentTrackerTestSuite) TestAssign_EmptyResultKeepsCurrentBatch() {
	ctx := context.Background()

	s.sentences.EXPECT().GetResolvedSourceIDs(ctx, "cv-1", "uk").Return(map[string]struct{}{}, nil)
	s.corpus.EXPECT().FetchSentences(ctx, "uk", 10, []string{}).Return(nil, nil)

	batch, err := s.tracker.Assign(ctx, s.account, "uk", 0)

	s.Require().NoError(err)
	s.True(batch.Exhausted())
	s.Empty(batch.ID)
	s.Equal(10, batch.Requested)
	s.Empty(s.account.CurrentLanguage)
}

func (s *AssignmentTrackerTestSuite) TestAssign_Validation() {
	ctx := context.Background()

	tests := []struct {
		name     string
		language string
		count    int
		field    string
	}{
		{"negative count", "en", -1, "count"},
		{"count above max", "en", 101, "count"},
		{"unknown language", "xx", 5, "language"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.tracker.Assign(ctx, s.account, tt.language, tt.count)

			var validationErr *domain.ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(tt.field, validationErr.Field)
		})
	}
}

func (s *AssignmentTrackerTestSuite) TestAssign_PropagatesCorpusErrors() {
	ctx := context.Background()
	authErr := &domain.AuthError{StatusCode: 401, Detail: "bad client"}

	s.sentences.EXPECT().GetResolvedSourceIDs(ctx, "cv-1", "en").Return(map[string]struct{}{}, nil)
	s.corpus.EXPECT().FetchSentences(ctx, "en", 3, gomock.Any()).Return(nil, authErr)

	_, err := s.tracker.Assign(ctx, s.account, "en", 3)

	s.Equal(authErr, err)
}

func (s *AssignmentTrackerTestSuite) TestAssign_StoreErrorRollsBack() {
	ctx := context.Background()
	candidates := []domain.SentenceCandidate{{SourceTextID: "t-1"}}

	s.sentences.EXPECT().GetResolvedSourceIDs(ctx, "cv-1", "en").Return(map[string]struct{}{}, nil)
	s.corpus.EXPECT().FetchSentences(ctx, "en", 1, gomock.Any()).Return(candidates, nil)
	s.txManager.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(runInTx)
	s.sentences.EXPECT().ReplaceActiveBatch(ctx, "cv-1", "en", gomock.Any(), candidates).
		Return(nil, errors.New("disk full"))

	_, err := s.tracker.Assign(ctx, s.account, "en", 1)

	s.ErrorContains(err, "replace active batch")
	s.Empty(s.account.CurrentLanguage)
}

func (s *AssignmentTrackerTestSuite) TestActiveBatch_NoLanguage() {
	_, err := s.tracker.ActiveBatch(context.Background(), s.account)

	s.ErrorIs(err, domain.ErrNoActiveLanguage)
}
