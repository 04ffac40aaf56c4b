package domain

import "time"

type SentenceStatus string

const (
	SentenceActive   SentenceStatus = "active"
	SentenceUploaded SentenceStatus = "uploaded"
	SentenceSkipped  SentenceStatus = "skipped"
)

// Resolved reports whether the sentence reached a terminal status.
func (s SentenceStatus) Resolved() bool {
	return s == SentenceUploaded || s == SentenceSkipped
}

type Sentence struct {
	ID             int64
	AccountID      string
	Language       string
	BatchID        string
	SequenceNumber int
	SourceTextID   string
	Text           string
	ContentHash    string
	Status         SentenceStatus
	CreatedAt      time.Time
}

// SentenceCandidate is a sentence offered by the corpus service before it is
// stored as part of a batch.
type SentenceCandidate struct {
	SourceTextID string
	Text         string
	ContentHash  string
}

// Batch is the set of sentences assigned together for one language.
type Batch struct {
	ID        string
	AccountID string
	Language  string
	Sentences []Sentence
	Requested int
}

// Exhausted reports whether the corpus service had nothing new to offer.
func (b *Batch) Exhausted() bool {
	return len(b.Sentences) == 0
}

// WorkKey identifies an (account, language) pair with outstanding uploads.
type WorkKey struct {
	AccountID string `db:"account_id"`
	Language  string `db:"language"`
}
