package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNotRegistered     = errors.New("contributor is not registered")
	ErrAlreadyRegistered = errors.New("contributor is already registered")
	ErrPendingUploads    = errors.New("recordings are still waiting for upload")
	ErrNoActiveLanguage  = errors.New("no active language selected")
	ErrSentenceResolved  = errors.New("sentence already resolved")
	ErrInvalidTransition = errors.New("invalid recording transition")
)

// AuthError means the credential exchange with the corpus service failed.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authenticate: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("authenticate: status %d", e.StatusCode)
}

// APIError means a corpus-service call returned a non-success status.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// BlobFetchError means recorded audio could not be retrieved.
type BlobFetchError struct {
	Ref string
	Err error
}

func (e *BlobFetchError) Error() string {
	return fmt.Sprintf("fetch blob %q: %v", e.Ref, e.Err)
}

func (e *BlobFetchError) Unwrap() error {
	return e.Err
}

// Transient reports whether the blob store could not be reached, as opposed
// to the blob itself being missing or unusable.
func (e *BlobFetchError) Transient() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) || errors.Is(e.Err, context.DeadlineExceeded)
}

// ValidationError reports malformed contributor input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UserDetail returns the text to show a contributor for err: the
// server-provided detail when there is one, otherwise a generic message.
func UserDetail(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("corpus service returned status %d", apiErr.StatusCode)
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		if authErr.Detail != "" {
			return authErr.Detail
		}
		return "could not authenticate with the corpus service"
	}

	var blobErr *BlobFetchError
	if errors.As(err, &blobErr) && !blobErr.Transient() {
		return "recorded audio is no longer available"
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	return "upload failed: network error, will retry later"
}
