package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMediaRepository implements content.MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// Create creates a new media record
func (r *GormMediaRepository) Create(ctx context.Context, media *content.Media) error {
	return translateError(r.db.WithContext(ctx).Create(media).Error)
}

// Delete deletes a media record by ID
func (r *GormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Media{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a media record by ID
func (r *GormMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Media, error) {
	var media content.Media
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &media, nil
}

// FindByUploader finds media records uploaded by a user with the total count
func (r *GormMediaRepository) FindByUploader(ctx context.Context, uploadedByID uuid.UUID, filter shared.Filter) ([]*content.Media, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&content.Media{}).
		Where("uploaded_by_id = ?", uploadedByID)

	if mediaType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", mediaType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	order := sortBy + " " + ValidateSortOrder(filter.OrderDir)

	var media []*content.Media
	if err := query.
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&media).Error; err != nil {
		return nil, 0, err
	}

	return media, total, nil
}

// Ensure GormMediaRepository implements MediaRepository
var _ content.MediaRepository = (*GormMediaRepository)(nil)
