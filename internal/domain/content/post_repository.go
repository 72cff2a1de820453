package content

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// Create creates a new post together with its tag associations
	Create(ctx context.Context, post *Post) error

	// Update updates an existing post
	Update(ctx context.Context, post *Post) error

	// UpdateWithTags updates a post and replaces its full tag association
	// set in a single transaction
	UpdateWithTags(ctx context.Context, post *Post, tagIDs []uuid.UUID) error

	// Delete hard-deletes a post and cascades to tag/media associations,
	// comments and view logs
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindBySlug finds a post by slug
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// FindAll finds posts matching the filter with the total count
	FindAll(ctx context.Context, filter PostFilter) ([]*Post, int64, error)

	// FindFeatured finds featured published posts, newest publish first
	FindFeatured(ctx context.Context) ([]*Post, error)

	// FindPublishedByCategory finds published posts in a category,
	// newest publish first
	FindPublishedByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Post, error)

	// FindPublishedNonFeatured finds published posts that are not featured,
	// newest publish first
	FindPublishedNonFeatured(ctx context.Context) ([]*Post, error)

	// CountPublishedPublicByCategory counts published public posts per category
	CountPublishedPublicByCategory(ctx context.Context) (map[uuid.UUID]int64, error)

	// ExistsBySlug checks if a post with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// IncrementViews bumps the denormalized view counter
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

// PostFilter contains filter options for querying posts
type PostFilter struct {
	Status     *PostStatus
	Visibility *PostVisibility
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	Keyword    string

	Page     int
	PageSize int

	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewPostFilter creates a filter with default values
func NewPostFilter() PostFilter {
	return PostFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithStatus sets the status filter
func (f PostFilter) WithStatus(status PostStatus) PostFilter {
	f.Status = &status
	return f
}

// WithAuthor sets the author filter
func (f PostFilter) WithAuthor(authorID uuid.UUID) PostFilter {
	f.AuthorID = &authorID
	return f
}

// WithCategory sets the category filter
func (f PostFilter) WithCategory(categoryID uuid.UUID) PostFilter {
	f.CategoryID = &categoryID
	return f
}

// Offset returns the offset for pagination
func (f PostFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f PostFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// PostTag is the join row between posts and tags
type PostTag struct {
	PostID uuid.UUID `gorm:"primaryKey"`
	TagID  uuid.UUID `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (PostTag) TableName() string {
	return "post_tags"
}

// PostMedia is the join row between posts and media assets
type PostMedia struct {
	PostID  uuid.UUID `gorm:"primaryKey"`
	MediaID uuid.UUID `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (PostMedia) TableName() string {
	return "post_media"
}
