package domain

import "time"

// ItemFailure records why a single recording could not be uploaded.
type ItemFailure struct {
	SentenceID     int64
	SequenceNumber int
	Detail         string
}

// UploadSummary holds the outcome of a sync over pending and failed recordings.
type UploadSummary struct {
	AccountID string
	Language  string
	Attempted int
	Succeeded int
	Failed    int
	Failures  []ItemFailure
	Duration  time.Duration
}

// RetryStats aggregates one scheduled retry pass over all outstanding work.
type RetryStats struct {
	Keys      int
	Succeeded int
	Failed    int
	Errors    int
	Duration  time.Duration
}

// RecordingStats describes progress within the active batch.
type RecordingStats struct {
	Sentences int `db:"sentences"`
	Recorded  int `db:"recorded"`
	Pending   int `db:"pending"`
	Uploaded  int `db:"uploaded"`
	Failed    int `db:"failed"`
	Skipped   int `db:"skipped"`
}
