package taxonomy

import (
	"strings"

	"github.com/newsroom/backend/internal/domain/shared"
)

// Tag is a flat label attached to posts
type Tag struct {
	shared.BaseEntity
	Name string
	Slug string
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new tag
func NewTag(name, slug string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tag name cannot exceed 100 characters")
	}
	slug, err := normalizeSlug(name, slug)
	if err != nil {
		return nil, err
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
	}, nil
}
