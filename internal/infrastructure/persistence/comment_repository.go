package persistence

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommentRepository implements content.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *content.Comment) error {
	return translateError(r.db.WithContext(ctx).Create(comment).Error)
}

// Update updates an existing comment
func (r *GormCommentRepository) Update(ctx context.Context, comment *content.Comment) error {
	return translateError(r.db.WithContext(ctx).Save(comment).Error)
}

// Delete deletes a comment by ID
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Comment{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Comment, error) {
	var comment content.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &comment, nil
}

// FindByPost finds comments for a post, optionally filtered by status,
// oldest first
func (r *GormCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, status *content.CommentStatus) ([]*content.Comment, error) {
	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var comments []*content.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByPost deletes all comments for a post
func (r *GormCommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Delete(&content.Comment{}, "post_id = ?", postID).Error)
}

// Ensure GormCommentRepository implements CommentRepository
var _ content.CommentRepository = (*GormCommentRepository)(nil)
