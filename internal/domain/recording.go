package domain

import (
	"fmt"
	"time"
)

type RecordingStatus string

const (
	RecordingAbsent   RecordingStatus = ""
	RecordingPending  RecordingStatus = "pending"
	RecordingUploaded RecordingStatus = "uploaded"
	RecordingFailed   RecordingStatus = "failed"
	RecordingSkipped  RecordingStatus = "skipped"
)

type Recording struct {
	SentenceID  int64
	BlobRef     string
	Status      RecordingStatus
	ErrorDetail string
	CreatedAt   time.Time
	UploadedAt  *time.Time
}

// UploadItem pairs a recording with the sentence it belongs to.
type UploadItem struct {
	Sentence  Sentence
	Recording Recording
}

var transitions = map[RecordingStatus][]RecordingStatus{
	RecordingAbsent:  {RecordingPending, RecordingSkipped},
	RecordingPending: {RecordingPending, RecordingUploaded, RecordingFailed, RecordingSkipped},
	RecordingFailed:  {RecordingPending, RecordingUploaded, RecordingFailed, RecordingSkipped},
}

// CanTransition reports whether a recording may move from one status to another.
// Uploaded and skipped are terminal.
func CanTransition(from, to RecordingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when the move is not allowed.
func CheckTransition(from, to RecordingStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	name := string(from)
	if from == RecordingAbsent {
		name = "absent"
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, name, to)
}

// UploadReceipt is what the corpus service returns for an accepted upload.
type UploadReceipt struct {
	AudioID string `json:"id"`
	Status  string `json:"status"`
}

// AudioStatus describes the processing state of an uploaded clip.
type AudioStatus struct {
	AudioID string `json:"id"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// UploadEvent is published after a recording is accepted by the corpus service.
type UploadEvent struct {
	AccountID      string
	Language       string
	SentenceID     int64
	SequenceNumber int
	SourceTextID   string
	AudioID        string
	UploadedAt     time.Time
}

// UploadRequest is one scripted audio submission to the corpus service.
type UploadRequest struct {
	Audio        []byte
	AccountID    string
	Language     string
	SourceTextID string
	Text         string
	ContentHash  string
	Demographics Demographics
}
