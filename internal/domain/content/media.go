package content

import (
	"context"
	"strings"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MediaType classifies a media asset
type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeDocument MediaType = "DOCUMENT"
)

// Media is an uploaded asset referenced by posts. StorageKey locates the
// object in the backing store so a metadata delete can remove it too.
type Media struct {
	shared.BaseEntity
	URL          string
	StorageKey   string
	Type         MediaType
	UploadedByID uuid.UUID
	AltText      string
	Caption      string
}

// TableName returns the table name for GORM
func (Media) TableName() string {
	return "media"
}

// NewMedia registers an uploaded asset
func NewMedia(uploadedByID uuid.UUID, url string, mediaType MediaType) (*Media, error) {
	if uploadedByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UPLOADER", "Uploader ID cannot be empty")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Media URL cannot be empty")
	}
	switch mediaType {
	case MediaTypeImage, MediaTypeVideo, MediaTypeDocument:
	default:
		return nil, shared.NewDomainError("INVALID_MEDIA_TYPE", "Unknown media type")
	}

	return &Media{
		BaseEntity:   shared.NewBaseEntity(),
		URL:          url,
		Type:         mediaType,
		UploadedByID: uploadedByID,
	}, nil
}

// MediaRepository defines the interface for media persistence
type MediaRepository interface {
	Create(ctx context.Context, media *Media) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Media, error)
	FindByUploader(ctx context.Context, uploadedByID uuid.UUID, filter shared.Filter) ([]*Media, int64, error)
}
