package publishing

import (
	"context"
	"time"
)

// MediaStorage abstracts the object store media files live in. Uploads go
// directly from the client to the store via presigned URLs; the backend only
// hands out URLs and records metadata.
type MediaStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the given storage key
	// along with the URL's expiry time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from the store
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// PublicURL returns the public read URL for a storage key
	PublicURL(storageKey string) string
}
