package persistence

import (
	"context"
	"strings"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSubscriberRepository implements content.SubscriberRepository using GORM
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GormSubscriberRepository
func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// Create creates a new subscriber
func (r *GormSubscriberRepository) Create(ctx context.Context, subscriber *content.Subscriber) error {
	return translateError(r.db.WithContext(ctx).Create(subscriber).Error)
}

// Update updates an existing subscriber
func (r *GormSubscriberRepository) Update(ctx context.Context, subscriber *content.Subscriber) error {
	return translateError(r.db.WithContext(ctx).Save(subscriber).Error)
}

// FindByEmail finds a subscriber by email
func (r *GormSubscriberRepository) FindByEmail(ctx context.Context, email string) (*content.Subscriber, error) {
	var subscriber content.Subscriber
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&subscriber).Error; err != nil {
		return nil, translateError(err)
	}
	return &subscriber, nil
}

// ExistsByEmail checks if a subscriber with the given email exists
func (r *GormSubscriberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.Subscriber{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds subscribers matching the filter with the total count
func (r *GormSubscriberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*content.Subscriber, int64, error) {
	query := r.db.WithContext(ctx).Model(&content.Subscriber{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if verified, ok := filter.Filters["verified"]; ok {
		query = query.Where("verified = ?", verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.OrderBy, SubscriberSortFields, "created_at")
	order := sortBy + " " + ValidateSortOrder(filter.OrderDir)

	var subscribers []*content.Subscriber
	if err := query.
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}

// Ensure GormSubscriberRepository implements SubscriberRepository
var _ content.SubscriberRepository = (*GormSubscriberRepository)(nil)
