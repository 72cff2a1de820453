package content

import (
	"context"
	"strings"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "PENDING"
	CommentStatusApproved CommentStatus = "APPROVED"
	CommentStatusRejected CommentStatus = "REJECTED"
)

// Comment is a reader remark on a post. AuthorID is nil for anonymous
// comments. New comments always start PENDING.
type Comment struct {
	shared.BaseEntity
	PostID   uuid.UUID
	AuthorID *uuid.UUID
	Content  string
	Status   CommentStatus
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// NewComment creates a pending comment on a post
func NewComment(postID uuid.UUID, authorID *uuid.UUID, content string) (*Comment, error) {
	if postID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POST_ID", "Post ID cannot be empty")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment cannot be empty")
	}
	if len(content) > 5000 {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment cannot exceed 5000 characters")
	}

	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		AuthorID:   authorID,
		Content:    content,
		Status:     CommentStatusPending,
	}, nil
}

// Approve marks the comment as visible
func (c *Comment) Approve() error {
	if c.Status == CommentStatusApproved {
		return nil
	}
	c.Status = CommentStatusApproved
	c.UpdatedAt = time.Now()
	return nil
}

// Reject hides the comment
func (c *Comment) Reject() error {
	if c.Status == CommentStatusRejected {
		return nil
	}
	c.Status = CommentStatusRejected
	c.UpdatedAt = time.Now()
	return nil
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindByPost(ctx context.Context, postID uuid.UUID, status *CommentStatus) ([]*Comment, error)
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}
