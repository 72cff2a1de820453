package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTagRepository implements taxonomy.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Tag, error) {
	var tag taxonomy.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// FindBySlug finds a tag by its slug
func (r *GormTagRepository) FindBySlug(ctx context.Context, slug string) (*taxonomy.Tag, error) {
	var tag taxonomy.Tag
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tag).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// FindBySlugs finds all tags whose slug is in the given set
func (r *GormTagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]taxonomy.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tags []taxonomy.Tag
	if err := r.db.WithContext(ctx).
		Where("slug IN ?", slugs).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindAll finds all tags matching the filter
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Tag, error) {
	query := r.db.WithContext(ctx).Model(&taxonomy.Tag{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TagSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var tags []taxonomy.Tag
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *taxonomy.Tag) error {
	return translateError(r.db.WithContext(ctx).Save(tag).Error)
}

// Delete deletes a tag
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&taxonomy.Tag{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tags matching the filter
func (r *GormTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&taxonomy.Tag{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTagRepository implements TagRepository
var _ taxonomy.TagRepository = (*GormTagRepository)(nil)
