package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"voice_courier/internal/domain"
	"voice_courier/internal/storage/txn"
)

type recordingRow struct {
	SentenceID  int64      `db:"sentence_id"`
	BlobRef     string     `db:"blob_ref"`
	Status      string     `db:"status"`
	ErrorDetail string     `db:"error_detail"`
	CreatedAt   time.Time  `db:"created_at"`
	UploadedAt  *time.Time `db:"uploaded_at"`
}

func (r recordingRow) toDomain() domain.Recording {
	return domain.Recording{
		SentenceID:  r.SentenceID,
		BlobRef:     r.BlobRef,
		Status:      domain.RecordingStatus(r.Status),
		ErrorDetail: r.ErrorDetail,
		CreatedAt:   r.CreatedAt,
		UploadedAt:  r.UploadedAt,
	}
}

const recordingColumns = "sentence_id, blob_ref, status, error_detail, created_at, uploaded_at"

type RecordingStore struct {
	db *sqlx.DB
}

func NewRecordingStore(db *sqlx.DB) *RecordingStore {
	return &RecordingStore{db: db}
}

// Upsert stores blobRef as the sentence's only recording and resets it to pending.
func (s *RecordingStore) Upsert(ctx context.Context, sentenceID int64, blobRef string) (*domain.Recording, error) {
	query := `
		INSERT INTO recordings (sentence_id, blob_ref, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (sentence_id) DO UPDATE SET
			blob_ref = EXCLUDED.blob_ref,
			status = EXCLUDED.status,
			error_detail = '',
			created_at = NOW(),
			uploaded_at = NULL
		RETURNING ` + recordingColumns

	var row recordingRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row, query, sentenceID, blobRef, domain.RecordingPending)
	if err != nil {
		return nil, err
	}
	recording := row.toDomain()
	return &recording, nil
}

func (s *RecordingStore) Get(ctx context.Context, sentenceID int64) (*domain.Recording, error) {
	var row recordingRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row,
		"SELECT "+recordingColumns+" FROM recordings WHERE sentence_id = $1",
		sentenceID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	recording := row.toDomain()
	return &recording, nil
}

// ListByStatus returns recordings in any of statuses whose sentence is still
// active, ordered by batch position.
func (s *RecordingStore) ListByStatus(
	ctx context.Context,
	accountID, language string,
	statuses []domain.RecordingStatus,
) ([]domain.UploadItem, error) {
	query := `
		SELECT
			s.id, s.account_id, s.language, s.batch_id, s.sequence_number,
			s.source_text_id, s.text, s.content_hash, s.status, s.created_at,
			r.sentence_id, r.blob_ref, r.status AS recording_status, r.error_detail,
			r.created_at AS recording_created_at, r.uploaded_at
		FROM recordings r
		INNER JOIN sentences s ON s.id = r.sentence_id
		WHERE s.account_id = $1 AND s.language = $2 AND s.status = $3 AND r.status = ANY($4)
		ORDER BY s.sequence_number`

	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}

	var rows []struct {
		sentenceRow
		SentenceID         int64      `db:"sentence_id"`
		BlobRef            string     `db:"blob_ref"`
		RecordingStatus    string     `db:"recording_status"`
		ErrorDetail        string     `db:"error_detail"`
		RecordingCreatedAt time.Time  `db:"recording_created_at"`
		UploadedAt         *time.Time `db:"uploaded_at"`
	}
	err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &rows, query,
		accountID, language, domain.SentenceActive, pq.Array(names),
	)
	if err != nil {
		return nil, err
	}

	items := make([]domain.UploadItem, len(rows))
	for i, row := range rows {
		items[i] = domain.UploadItem{
			Sentence: row.sentenceRow.toDomain(),
			Recording: recordingRow{
				SentenceID:  row.SentenceID,
				BlobRef:     row.BlobRef,
				Status:      row.RecordingStatus,
				ErrorDetail: row.ErrorDetail,
				CreatedAt:   row.RecordingCreatedAt,
				UploadedAt:  row.UploadedAt,
			}.toDomain(),
		}
	}
	return items, nil
}

// SetStatus records the outcome of an upload attempt. Uploaded recordings get
// their upload time stamped.
func (s *RecordingStore) SetStatus(ctx context.Context, sentenceID int64, status domain.RecordingStatus, detail string) error {
	var uploadedAt *time.Time
	if status == domain.RecordingUploaded {
		now := time.Now().UTC()
		uploadedAt = &now
	}

	res, err := txn.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE recordings SET
			status = $2,
			error_detail = $3,
			uploaded_at = COALESCE($4, uploaded_at)
		WHERE sentence_id = $1`,
		sentenceID, status, detail, uploadedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Stats summarises the latest batch of the pair.
func (s *RecordingStore) Stats(ctx context.Context, accountID, language string) (*domain.RecordingStats, error) {
	query := `
		SELECT
			COUNT(*) AS sentences,
			COUNT(r.sentence_id) AS recorded,
			COUNT(*) FILTER (WHERE r.status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE s.status = 'uploaded') AS uploaded,
			COUNT(*) FILTER (WHERE r.status = 'failed') AS failed,
			COUNT(*) FILTER (WHERE s.status = 'skipped') AS skipped
		FROM sentences s
		LEFT JOIN recordings r ON r.sentence_id = s.id
		WHERE s.batch_id = ` + latestBatch

	var stats domain.RecordingStats
	if err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &stats, query, accountID, language); err != nil {
		return nil, err
	}
	return &stats, nil
}
