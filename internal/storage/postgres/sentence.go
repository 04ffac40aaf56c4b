package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"voice_courier/internal/domain"
	"voice_courier/internal/storage/txn"
)

type sentenceRow struct {
	ID             int64     `db:"id"`
	AccountID      string    `db:"account_id"`
	Language       string    `db:"language"`
	BatchID        string    `db:"batch_id"`
	SequenceNumber int       `db:"sequence_number"`
	SourceTextID   string    `db:"source_text_id"`
	Text           string    `db:"text"`
	ContentHash    string    `db:"content_hash"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
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
		CreatedAt:      r.CreatedAt,
	}
}

const sentenceColumns = `id, account_id, language, batch_id, sequence_number,
	source_text_id, text, content_hash, status, created_at`

// latestBatch selects the batch id of the most recent batch for ($1, $2).
const latestBatch = `(
	SELECT batch_id FROM sentences
	WHERE account_id = $1 AND language = $2
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
	query := `
		SELECT DISTINCT source_text_id FROM sentences
		WHERE account_id = $1 AND language = $2 AND status = ANY($3)`

	var ids []string
	err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &ids, query,
		accountID, language,
		pq.Array([]string{string(domain.SentenceUploaded), string(domain.SentenceSkipped)}),
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
			SELECT id FROM sentences WHERE account_id = $1 AND language = $2 AND status = $3
		)`,
		accountID, language, domain.SentenceActive,
	)
	if err != nil {
		return nil, err
	}

	_, err = exec.ExecContext(ctx,
		"DELETE FROM sentences WHERE account_id = $1 AND language = $2 AND status = $3",
		accountID, language, domain.SentenceActive,
	)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO sentences (
		account_id, language, batch_id, status, sequence_number, source_text_id, text, content_hash
	) VALUES `)

	valueArgs := make([]any, 0, 4+len(candidates)*4)
	valueArgs = append(valueArgs, accountID, language, batchID, domain.SentenceActive)

	for i, c := range candidates {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $2, $3, $4")
		for j := 0; j < 4; j++ {
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(len(valueArgs) + j + 1))
		}
		sb.WriteString(")")
		valueArgs = append(valueArgs, i+1, c.SourceTextID, c.Text, c.ContentHash)
	}
	sb.WriteString(" RETURNING " + sentenceColumns)

	var rows []sentenceRow
	if err := sqlx.SelectContext(ctx, exec, &rows, sb.String(), valueArgs...); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].SequenceNumber < rows[j].SequenceNumber })

	return toSentences(rows), nil
}

// GetActiveByNumber looks up position number within the latest batch.
func (s *SentenceStore) GetActiveByNumber(ctx context.Context, accountID, language string, number int) (*domain.Sentence, error) {
	query := "SELECT " + sentenceColumns + " FROM sentences WHERE batch_id = " + latestBatch + " AND sequence_number = $3"
	return s.get(ctx, query, accountID, language, number)
}

func (s *SentenceStore) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	return s.get(ctx, "SELECT "+sentenceColumns+" FROM sentences WHERE id = $1", id)
}

// ListActive returns the latest batch in sequence order.
func (s *SentenceStore) ListActive(ctx context.Context, accountID, language string) ([]domain.Sentence, error) {
	query := "SELECT " + sentenceColumns + " FROM sentences WHERE batch_id = " + latestBatch + " ORDER BY sequence_number"

	var rows []sentenceRow
	if err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &rows, query, accountID, language); err != nil {
		return nil, err
	}
	return toSentences(rows), nil
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
		"UPDATE sentences SET status = $2 WHERE id = $1 AND status = $3",
		id, status, domain.SentenceActive,
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

	var exists bool
	if err := sqlx.GetContext(ctx, exec, &exists, "SELECT EXISTS (SELECT 1 FROM sentences WHERE id = $1)", id); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrSentenceResolved
}

// ListOutstanding returns every pair with pending or failed recordings on
// active sentences.
func (s *SentenceStore) ListOutstanding(ctx context.Context) ([]domain.WorkKey, error) {
	query := `
		SELECT DISTINCT s.account_id, s.language
		FROM sentences s
		INNER JOIN recordings r ON r.sentence_id = s.id
		WHERE s.status = $1 AND r.status = ANY($2)
		ORDER BY s.account_id, s.language`

	var keys []domain.WorkKey
	err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &keys, query,
		domain.SentenceActive,
		pq.Array([]string{string(domain.RecordingPending), string(domain.RecordingFailed)}),
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

func toSentences(rows []sentenceRow) []domain.Sentence {
	sentences := make([]domain.Sentence, len(rows))
	for i, row := range rows {
		sentences[i] = row.toDomain()
	}
	return sentences
}
