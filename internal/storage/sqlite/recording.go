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

type recordingRow struct {
	SentenceID  int64          `db:"sentence_id"`
	BlobRef     string         `db:"blob_ref"`
	Status      string         `db:"status"`
	ErrorDetail string         `db:"error_detail"`
	CreatedAt   string         `db:"created_at"`
	UploadedAt  sql.NullString `db:"uploaded_at"`
}

func (r recordingRow) toDomain() domain.Recording {
	return domain.Recording{
		SentenceID:  r.SentenceID,
		BlobRef:     r.BlobRef,
		Status:      domain.RecordingStatus(r.Status),
		ErrorDetail: r.ErrorDetail,
		CreatedAt:   parseTime(r.CreatedAt),
		UploadedAt:  parseNullTime(r.UploadedAt),
	}
}

const recordingColumns = "sentence_id, blob_ref, status, error_detail, created_at, uploaded_at"

type RecordingStore struct {
	db *sqlx.DB
}

func NewRecordingStore(db *sqlx.DB) *RecordingStore {
	return &RecordingStore{db: db}
}

func (s *RecordingStore) Upsert(ctx context.Context, sentenceID int64, blobRef string) (*domain.Recording, error) {
	var row recordingRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row, `
		INSERT INTO recordings (sentence_id, blob_ref, status, error_detail, created_at)
		VALUES (?, ?, ?, '', ?)
		ON CONFLICT (sentence_id) DO UPDATE SET
			blob_ref = excluded.blob_ref,
			status = excluded.status,
			error_detail = '',
			created_at = excluded.created_at,
			uploaded_at = NULL
		RETURNING `+recordingColumns,
		sentenceID, blobRef, domain.RecordingPending, timestamp(time.Now()),
	)
	if err != nil {
		return nil, err
	}
	recording := row.toDomain()
	return &recording, nil
}

func (s *RecordingStore) Get(ctx context.Context, sentenceID int64) (*domain.Recording, error) {
	var row recordingRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row,
		"SELECT "+recordingColumns+" FROM recordings WHERE sentence_id = ?",
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

func (s *RecordingStore) ListByStatus(
	ctx context.Context,
	accountID, language string,
	statuses []domain.RecordingStatus,
) ([]domain.UploadItem, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT
			s.id, s.account_id, s.language, s.batch_id, s.sequence_number,
			s.source_text_id, s.text, s.content_hash, s.status, s.created_at,
			r.sentence_id, r.blob_ref, r.status AS recording_status, r.error_detail,
			r.created_at AS recording_created_at, r.uploaded_at
		FROM recordings r
		INNER JOIN sentences s ON s.id = r.sentence_id
		WHERE s.account_id = ? AND s.language = ? AND s.status = ? AND r.status IN (?)
		ORDER BY s.sequence_number`,
		accountID, language, domain.SentenceActive, statuses,
	)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		sentenceRow
		SentenceID         int64          `db:"sentence_id"`
		BlobRef            string         `db:"blob_ref"`
		RecordingStatus    string         `db:"recording_status"`
		ErrorDetail        string         `db:"error_detail"`
		RecordingCreatedAt string         `db:"recording_created_at"`
		UploadedAt         sql.NullString `db:"uploaded_at"`
	}
	if err := sqlx.SelectContext(ctx, txn.Executor(ctx, s.db), &rows, query, args...); err != nil {
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

func (s *RecordingStore) SetStatus(ctx context.Context, sentenceID int64, status domain.RecordingStatus, detail string) error {
	var uploadedAt sql.NullString
	if status == domain.RecordingUploaded {
		uploadedAt = sql.NullString{String: timestamp(time.Now()), Valid: true}
	}

	res, err := txn.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE recordings SET
			status = ?,
			error_detail = ?,
			uploaded_at = COALESCE(?, uploaded_at)
		WHERE sentence_id = ?`,
		status, detail, uploadedAt, sentenceID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *RecordingStore) Stats(ctx context.Context, accountID, language string) (*domain.RecordingStats, error) {
	var stats domain.RecordingStats
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &stats, `
		SELECT
			COUNT(*) AS sentences,
			COUNT(r.sentence_id) AS recorded,
			COALESCE(SUM(r.status = 'pending'), 0) AS pending,
			COALESCE(SUM(s.status = 'uploaded'), 0) AS uploaded,
			COALESCE(SUM(r.status = 'failed'), 0) AS failed,
			COALESCE(SUM(s.status = 'skipped'), 0) AS skipped
		FROM sentences s
		LEFT JOIN recordings r ON r.sentence_id = s.id
		WHERE s.batch_id = `+latestBatch,
		accountID, language,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
