package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormViewLogRepository implements content.ViewLogRepository using GORM
type GormViewLogRepository struct {
	db *gorm.DB
}

// NewGormViewLogRepository creates a new GormViewLogRepository
func NewGormViewLogRepository(db *gorm.DB) *GormViewLogRepository {
	return &GormViewLogRepository{db: db}
}

// Create appends a view log entry
func (r *GormViewLogRepository) Create(ctx context.Context, log *content.ViewLog) error {
	return translateError(r.db.WithContext(ctx).Create(log).Error)
}

// CountByPost counts view log entries for a post
func (r *GormViewLogRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.ViewLog{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByPost deletes all view log entries for a post
func (r *GormViewLogRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Delete(&content.ViewLog{}, "post_id = ?", postID).Error)
}

// Ensure GormViewLogRepository implements ViewLogRepository
var _ content.ViewLogRepository = (*GormViewLogRepository)(nil)
