package taxonomy

import (
	"context"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindBySlug finds a tag by its slug
	FindBySlug(ctx context.Context, slug string) (*Tag, error)

	// FindBySlugs finds all tags whose slug is in the given set
	FindBySlugs(ctx context.Context, slugs []string) ([]Tag, error)

	// FindAll finds all tags matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tag, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tags matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
