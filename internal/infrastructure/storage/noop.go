package storage

import (
	"context"
	"errors"
	"time"

	publishingapp "github.com/newsroom/backend/internal/application/publishing"
)

// ErrStorageDisabled is returned when media storage is disabled in config
var ErrStorageDisabled = errors.New("media storage is disabled")

// NoopMediaStore rejects every operation. It is wired in when media
// storage is disabled so handlers fail with a clear error.
type NoopMediaStore struct{}

// NewNoopMediaStore creates a disabled media store
func NewNoopMediaStore() *NoopMediaStore {
	return &NoopMediaStore{}
}

func (s *NoopMediaStore) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

func (s *NoopMediaStore) DeleteObject(ctx context.Context, storageKey string) error {
	return ErrStorageDisabled
}

func (s *NoopMediaStore) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	return false, ErrStorageDisabled
}

func (s *NoopMediaStore) PublicURL(storageKey string) string {
	return ""
}

// Ensure NoopMediaStore implements MediaStorage
var _ publishingapp.MediaStorage = (*NoopMediaStore)(nil)
