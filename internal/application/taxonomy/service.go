package taxonomy

import (
	"context"
	"errors"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service resolves category and tag names to canonical taxonomy entities,
// creating them on first use. Resolution is idempotent: the same name always
// maps to the same slug and the same row.
type Service struct {
	categoryRepo taxonomy.CategoryRepository
	tagRepo      taxonomy.TagRepository
	logger       *zap.Logger
}

// NewService creates a new taxonomy service
func NewService(
	categoryRepo taxonomy.CategoryRepository,
	tagRepo taxonomy.TagRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		logger:       logger,
	}
}

// ResolveCategory finds the category with the slug derived from name (or the
// explicit slug when given) and creates it when absent. An existing category
// is returned unchanged; in particular it is never reparented.
func (s *Service) ResolveCategory(ctx context.Context, name, slug string, parentID *uuid.UUID) (*taxonomy.Category, error) {
	if slug == "" {
		slug = taxonomy.Slugify(name)
	}

	existing, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var category *taxonomy.Category
	if parentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		category, err = taxonomy.NewChildCategory(name, slug, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = taxonomy.NewCategory(name, slug)
		if err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		// Lost a concurrent create race; the unique slug index is the
		// backstop. Re-read and return the winner.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.categoryRepo.FindBySlug(ctx, slug)
		}
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("slug", category.Slug),
		zap.String("category_id", category.ID.String()))

	return category, nil
}

// ResolveTag finds the tag with the slug derived from name (or the explicit
// slug when given) and creates it when absent.
func (s *Service) ResolveTag(ctx context.Context, name, slug string) (*taxonomy.Tag, error) {
	if slug == "" {
		slug = taxonomy.Slugify(name)
	}

	existing, err := s.tagRepo.FindBySlug(ctx, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tag, err := taxonomy.NewTag(name, slug)
	if err != nil {
		return nil, err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.tagRepo.FindBySlug(ctx, slug)
		}
		return nil, err
	}

	s.logger.Info("Tag created",
		zap.String("slug", tag.Slug),
		zap.String("tag_id", tag.ID.String()))

	return tag, nil
}

// ResolveTags resolves a set of tag names independently. Input order is
// preserved and names mapping to the same slug are deduplicated to their
// first occurrence.
func (s *Service) ResolveTags(ctx context.Context, names []string) ([]taxonomy.Tag, error) {
	tags := make([]taxonomy.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		slug := taxonomy.Slugify(name)
		if slug == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Tag name yields an empty slug")
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}

		tag, err := s.ResolveTag(ctx, name, slug)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}

// GetCategoryBySlug retrieves a single category
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*taxonomy.Category, error) {
	return s.categoryRepo.FindBySlug(ctx, slug)
}

// ListCategories retrieves categories matching the filter
func (s *Service) ListCategories(ctx context.Context, filter shared.Filter) ([]taxonomy.Category, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}
	return s.categoryRepo.FindAll(ctx, filter)
}

// ListRootCategories retrieves all top-level categories
func (s *Service) ListRootCategories(ctx context.Context) ([]taxonomy.Category, error) {
	return s.categoryRepo.FindRootCategories(ctx)
}

// ListChildren retrieves the direct children of a category
func (s *Service) ListChildren(ctx context.Context, parentID uuid.UUID) ([]taxonomy.Category, error) {
	return s.categoryRepo.FindChildren(ctx, parentID)
}

// ListTags retrieves tags matching the filter
func (s *Service) ListTags(ctx context.Context, filter shared.Filter) ([]taxonomy.Tag, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}
	return s.tagRepo.FindAll(ctx, filter)
}

// DeleteCategory removes a category that has no children and no posts
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.ErrHasDependents
	}

	hasPosts, err := s.categoryRepo.HasPosts(ctx, id)
	if err != nil {
		return err
	}
	if hasPosts {
		return shared.ErrHasDependents
	}

	return s.categoryRepo.Delete(ctx, id)
}
