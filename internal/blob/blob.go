// Package blob retrieves recorded audio by reference from wherever the
// front-end left it.
package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"voice_courier/internal/config"
	"voice_courier/internal/domain"
)

// maxBlobSize bounds a single recording read into memory.
const maxBlobSize = 50 << 20

type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
	// Check reports whether the backing store is reachable right now.
	Check(ctx context.Context) error
}

// New builds the fetcher for the configured source. It never touches the
// network, so recordings can be stored while offline; connection problems
// surface from Fetch or Check.
func New(cfg config.BlobsConfig, timeout time.Duration) (Fetcher, error) {
	switch cfg.Source {
	case config.BlobSourceTelegram:
		return NewTelegram(cfg.Telegram.BotToken, timeout)
	case config.BlobSourceS3:
		return NewS3(S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
		})
	case config.BlobSourceDir:
		return NewDir(cfg.Dir.Root), nil
	}
	return nil, fmt.Errorf("unknown blob source %q", cfg.Source)
}

func readAll(ref string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBlobSize+1))
	if err != nil {
		return nil, &domain.BlobFetchError{Ref: ref, Err: err}
	}
	if len(data) > maxBlobSize {
		return nil, &domain.BlobFetchError{Ref: ref, Err: fmt.Errorf("blob exceeds %d bytes", maxBlobSize)}
	}
	if len(data) == 0 {
		return nil, &domain.BlobFetchError{Ref: ref, Err: fmt.Errorf("blob is empty")}
	}
	return data, nil
}
