package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMagazineRepository implements content.MagazineRepository using GORM
type GormMagazineRepository struct {
	db *gorm.DB
}

// NewGormMagazineRepository creates a new GormMagazineRepository
func NewGormMagazineRepository(db *gorm.DB) *GormMagazineRepository {
	return &GormMagazineRepository{db: db}
}

// Create creates a new magazine
func (r *GormMagazineRepository) Create(ctx context.Context, magazine *content.Magazine) error {
	return translateError(r.db.WithContext(ctx).Create(magazine).Error)
}

// Update updates an existing magazine
func (r *GormMagazineRepository) Update(ctx context.Context, magazine *content.Magazine) error {
	return translateError(r.db.WithContext(ctx).Save(magazine).Error)
}

// Delete deletes a magazine by ID
func (r *GormMagazineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Magazine{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a magazine by ID
func (r *GormMagazineRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Magazine, error) {
	var magazine content.Magazine
	if err := r.db.WithContext(ctx).First(&magazine, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &magazine, nil
}

// FindBySlug finds a magazine by slug
func (r *GormMagazineRepository) FindBySlug(ctx context.Context, slug string) (*content.Magazine, error) {
	var magazine content.Magazine
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&magazine).Error; err != nil {
		return nil, translateError(err)
	}
	return &magazine, nil
}

// FindAll finds magazines matching the filter with the total count
func (r *GormMagazineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*content.Magazine, int64, error) {
	query := r.db.WithContext(ctx).Model(&content.Magazine{})

	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.OrderBy, MagazineSortFields, "created_at")
	order := sortBy + " " + ValidateSortOrder(filter.OrderDir)

	var magazines []*content.Magazine
	if err := query.
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&magazines).Error; err != nil {
		return nil, 0, err
	}

	return magazines, total, nil
}

// ExistsBySlug checks if a magazine with the given slug exists
func (r *GormMagazineRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.Magazine{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormMagazineRepository implements MagazineRepository
var _ content.MagazineRepository = (*GormMagazineRepository)(nil)
