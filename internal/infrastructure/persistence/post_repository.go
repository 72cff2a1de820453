package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPostRepository implements content.PostRepository using GORM
type GormPostRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormPostRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Create creates a new post together with its tag associations.
// Both writes and the outbox entries happen in one transaction.
func (r *GormPostRepository) Create(ctx context.Context, post *content.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if err := r.saveTags(tx, post.ID, post.TagIDs); err != nil {
			return err
		}
		return saveAggregateEvents(ctx, tx, r.outboxSaver, post)
	})
	return translateError(err)
}

// Update updates an existing post, saving any pending domain events to the
// outbox in the same transaction
func (r *GormPostRepository) Update(ctx context.Context, post *content.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		return saveAggregateEvents(ctx, tx, r.outboxSaver, post)
	})
	return translateError(err)
}

// UpdateWithTags updates a post and replaces its full tag association set
// in one transaction, so a failure on either side rolls back both.
// Delete-all-then-recreate keeps the association an exact mirror of the input.
func (r *GormPostRepository) UpdateWithTags(ctx context.Context, post *content.Post, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&content.PostTag{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		if err := r.saveTags(tx, post.ID, tagIDs); err != nil {
			return err
		}
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		return saveAggregateEvents(ctx, tx, r.outboxSaver, post)
	})
	return translateError(err)
}

func (r *GormPostRepository) saveTags(tx *gorm.DB, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]content.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, content.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

// Delete hard-deletes a post and cascades to tag/media associations,
// comments and view logs
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&content.PostTag{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&content.PostMedia{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&content.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&content.ViewLog{}, "post_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&content.Post{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	return translateError(err)
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	var post content.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.loadTags(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug finds a post by slug
func (r *GormPostRepository) FindBySlug(ctx context.Context, slug string) (*content.Post, error) {
	var post content.Post
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.loadTags(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormPostRepository) loadTags(ctx context.Context, post *content.Post) error {
	var rows []content.PostTag
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", post.ID).
		Find(&rows).Error; err != nil {
		return err
	}
	tagIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		tagIDs = append(tagIDs, row.TagID)
	}
	post.TagIDs = tagIDs
	return nil
}

// FindAll finds posts matching the filter with the total count
func (r *GormPostRepository) FindAll(ctx context.Context, filter content.PostFilter) ([]*content.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&content.Post{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Visibility != nil {
		query = query.Where("visibility = ?", *filter.Visibility)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.SortBy, PostSortFields, "created_at")
	order := sortBy + " " + ValidateSortOrder(filter.SortOrder)

	var posts []*content.Post
	if err := query.
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// FindFeatured finds featured published posts, newest publish first
func (r *GormPostRepository) FindFeatured(ctx context.Context) ([]*content.Post, error) {
	var posts []*content.Post
	if err := r.db.WithContext(ctx).
		Where("is_featured = ? AND status = ?", true, content.PostStatusPublished).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublishedByCategory finds published posts in a category, newest publish first
func (r *GormPostRepository) FindPublishedByCategory(ctx context.Context, categoryID uuid.UUID) ([]*content.Post, error) {
	var posts []*content.Post
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND status = ?", categoryID, content.PostStatusPublished).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublishedNonFeatured finds published posts that are not featured,
// newest publish first
func (r *GormPostRepository) FindPublishedNonFeatured(ctx context.Context) ([]*content.Post, error) {
	var posts []*content.Post
	if err := r.db.WithContext(ctx).
		Where("is_featured = ? AND status = ?", false, content.PostStatusPublished).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPublishedPublicByCategory counts published public posts per category
func (r *GormPostRepository) CountPublishedPublicByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	type row struct {
		CategoryID uuid.UUID
		Total      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&content.Post{}).
		Select("category_id, COUNT(*) AS total").
		Where("status = ? AND visibility = ? AND category_id IS NOT NULL",
			content.PostStatusPublished, content.PostVisibilityPublic).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}
	return counts, nil
}

// ExistsBySlug checks if a post with the given slug exists
func (r *GormPostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViews bumps the denormalized view counter
func (r *GormPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&content.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Ensure GormPostRepository implements PostRepository
var _ content.PostRepository = (*GormPostRepository)(nil)
