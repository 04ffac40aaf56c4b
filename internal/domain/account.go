package domain

import "time"

// Account mirrors a corpus-service user. AccountID is the external identifier
// issued by the corpus service and is the key for all dedup history.
type Account struct {
	ContributorID   int64
	AccountID       string
	Email           string
	Username        string
	CurrentLanguage string
	Demographics    Demographics
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Demographics are optional and sent along with every upload when set.
type Demographics struct {
	Age    string
	Gender string
}

// Language is a dataset code the corpus service accepts audio for.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
