package taxonomy

import (
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category represents a section in the editorial taxonomy
// It supports tree structure with parent-child relationships
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string
	Description string
	ParentID    *uuid.UUID
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	slug, err := normalizeSlug(name, slug)
	if err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new category under a parent
func NewChildCategory(name, slug string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	category, err := NewCategory(name, slug)
	if err != nil {
		return nil, err
	}
	category.ParentID = &parent.ID

	return category, nil
}

// Update updates the category's basic information. The slug never changes
// after creation so published URLs stay stable.
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetParent reparents the category. The caller must verify the new parent
// exists and is not a descendant of this category.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsRoot returns true if this is a top-level category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

// normalizeSlug returns the explicit slug when given, otherwise derives one
// from the name. An explicit slug must already be in canonical form.
func normalizeSlug(name, slug string) (string, error) {
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" || slug != Slugify(slug) {
		return "", shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase alphanumeric with hyphens")
	}
	if len(slug) > 150 {
		return "", shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 150 characters")
	}
	return slug, nil
}
