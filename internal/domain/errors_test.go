package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"api with detail", &APIError{Op: "upload audio", StatusCode: 400, Detail: "hash mismatch"}, "hash mismatch"},
		{"api without detail", &APIError{Op: "upload audio", StatusCode: 502}, "corpus service returned status 502"},
		{"wrapped api", fmt.Errorf("item 3: %w", &APIError{StatusCode: 422, Detail: "too short"}), "too short"},
		{"auth", &AuthError{StatusCode: 401}, "could not authenticate with the corpus service"},
		{"blob", &BlobFetchError{Ref: "abc", Err: errors.New("gone")}, "recorded audio is no longer available"},
		{
			"blob store unreachable",
			&BlobFetchError{Ref: "abc", Err: &url.Error{Op: "Get", URL: "http://127.0.0.1:1/recordings/abc", Err: &net.OpError{Op: "dial", Net: "tcp"}}},
			"upload failed: network error, will retry later",
		},
		{"blob timeout", &BlobFetchError{Ref: "abc", Err: fmt.Errorf("download file: %w", context.DeadlineExceeded)}, "upload failed: network error, will retry later"},
		{"validation", &ValidationError{Field: "email", Message: "that doesn't look like a valid email"}, "that doesn't look like a valid email"},
		{"other", errors.New("dial tcp: i/o timeout"), "upload failed: network error, will retry later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserDetail(tt.err))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(RecordingAbsent, RecordingPending))
	assert.NoError(t, CheckTransition(RecordingFailed, RecordingPending))
	assert.NoError(t, CheckTransition(RecordingPending, RecordingUploaded))
	assert.NoError(t, CheckTransition(RecordingFailed, RecordingUploaded))
	assert.NoError(t, CheckTransition(RecordingPending, RecordingSkipped))

	err := CheckTransition(RecordingUploaded, RecordingPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = CheckTransition(RecordingAbsent, RecordingUploaded)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "absent -> uploaded")

	assert.False(t, CanTransition(RecordingSkipped, RecordingPending))
}

func TestBlobFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("no such key")
	err := fmt.Errorf("item: %w", &BlobFetchError{Ref: "k", Err: cause})
	assert.ErrorIs(t, err, cause)
}
