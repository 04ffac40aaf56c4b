package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"voice_courier/internal/domain"
	"voice_courier/internal/storage/txn"
)

type sentenceRow struct {
	ID             int64  `db:"id"`
	AccountID      string `db:"account_id"`
	Language       string `db:"language"`
	BatchID        string `db:"batch_id"`
	SequenceNumber int    `db:"sequence_number"`
	SourceTextID   string `db:"source_text_id"`
	Text           string `db:"text"`
	ContentHash    string `db:"content_hash"`
	Status         string `db:"status"`
	CreatedAt      string `db:"created_at"`
}

func (r sentenceRow) toDomain() domain.Sentence {
	return domain.Sentence{
		ID:             r.ID,
		AccountID:      r.AccountID,
		Language:       r.Language,
		BatchID:        r.BatchID,
		SequenceNumber: r.SequenceNumber,
		SourceTextID:   r.SourceTextID,
		Text:           r.Text,
		ContentHash:    r.ContentHash,
		Status:         domain.SentenceStatus(r.Status),
		CreatedAt:      parseTime(r.CreatedAt),
	}
}

const sentenceColumns = `id, account_id, language, batch_id, sequence_number,
	source_text_id, text, content_hash, status, created_at`

// latestBatch selects the batch id of the most recent batch for the two
// leading account and language arguments.
const latestBatch = `(
	SELECT batch_id FROM sentences
	WHERE account_id = ? AND language = ?
	ORDER BY id DESC
	LIMIT 1
)`

type SentenceStore struct {
	db *sqlx.DB
}

func NewSentenceStore(db *sqlx.DB) *SentenceStore {
	return &SentenceStore{db: db}
}

func (s *SentenceStore) GetResolvedSourceIDs(ctx context.Context, accountID, language string) (map[string]struct{}, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &ids, `
		SELECT DISTINCT source_text_id FROM sentences
		WHERE account_id = ? AND language = ? AND status IN (?, ?)`,
		accountID, language, domain.SentenceUploaded, domain.SentenceSkipped,
	)
	if err != nil {
		return nil, err
	}

	result := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// ReplaceActiveBatch drops the unresolved sentences of the pair together with
// their recordings and stores candidates as a new batch numbered from 1.
// Callers run it inside a transaction.
func (s *SentenceStore) ReplaceActiveBatch(
	ctx context.Context,
	accountID, language, batchID string,
	candidates []domain.SentenceCandidate,
) ([]domain.Sentence, error) {
	exec := txn.Executor(ctx, s.db)

	_, err := exec.ExecContext(ctx, `
		DELETE FROM recordings WHERE sentence_id IN (
			SELECT id FROM sentences WHERE account_id = ? AND language = ? AND status = ?
		)`,
		accountID, language, domain.SentenceActive,
	)
	if err != nil {
		return nil, err
	}

	_, err = exec.ExecContext(ctx,
		"DELETE FROM sentences WHERE account_id = ? AND language = ? AND status = ?",
		accountID, language, domain.SentenceActive,
	)
	if err != nil {
		return nil, err
	}

	now := timestamp(time.Now())
	sentences := make([]domain.Sentence, 0, len(candidates))

	for i, c := range candidates {
		var row sentenceRow
		err := sqlx.GetContext(ctx, exec, &row, `
			INSERT INTO sentences (
				account_id, language, batch_id, sequence_number, source_text_id, text, content_hash, status, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING `+sentenceColumns,
			accountID, language, batchID, i+1, c.SourceTextID, c.Text, c.ContentHash, domain.SentenceActive, now,
		)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, row.toDomain())
	}

	return sentences, nil
}

// GetActiveByNumber looks up position number within the latest batch.
func (s *SentenceStore) GetActiveByNumber(ctx context.Context, accountID, language string, number int) (*domain.Sentence, error) {
	query := "SELECT " + sentenceColumns + " FROM sentences WHERE batch_id = " + latestBatch + " AND sequence_number = ?"
	return s.get(ctx, query, accountID, language, number)
}

func (s *SentenceStore) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	return s.get(ctx, "SELECT "+sentenceColumns+" FROM sentences WHERE id = ?", id)
}

func (s *SentenceStore) ListActive(ctx context.Context, accountID, language string) ([]domain.Sentence, error) {
	query := "SELECT " + sentenceColumns + " FROM sentences WHERE batch_id = " + latestBatch + " ORDER BY sequence_number"

	var rows []sentenceRow
	if err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &rows, query, accountID, language); err != nil {
		return nil, err
	}

	sentences := make([]domain.Sentence, len(rows))
	for i, row := range rows {
		sentences[i] = row.toDomain()
	}
	return sentences, nil
}

func (s *SentenceStore) CountActive(ctx context.Context, accountID, language string) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &count,
		"SELECT COUNT(*) FROM sentences WHERE batch_id = "+latestBatch,
		accountID, language,
	)
	return count, err
}

// SetStatus moves an active sentence to status. Resolved sentences never
// change again.
func (s *SentenceStore) SetStatus(ctx context.Context, id int64, status domain.SentenceStatus) error {
	exec := txn.Executor(ctx, s.db)

	res, err := exec.ExecContext(ctx,
		"UPDATE sentences SET status = ? WHERE id = ? AND status = ?",
		status, id, domain.SentenceActive,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var count int
	if err := sqlx.GetContext(ctx, exec, &count, "SELECT COUNT(1) FROM sentences WHERE id = ?", id); err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrSentenceResolved
}

func (s *SentenceStore) ListOutstanding(ctx context.Context) ([]domain.WorkKey, error) {
	var keys []domain.WorkKey
	err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &keys, `
		SELECT DISTINCT s.account_id, s.language
		FROM sentences s
		INNER JOIN recordings r ON r.sentence_id = s.id
		WHERE s.status = ? AND r.status IN (?, ?)
		ORDER BY s.account_id, s.language`,
		domain.SentenceActive, domain.RecordingPending, domain.RecordingFailed,
	)
	return keys, err
}

func (s *SentenceStore) get(ctx context.Context, query string, args ...any) (*domain.Sentence, error) {
	var row sentenceRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sentence := row.toDomain()
	return &sentence, nil
}
