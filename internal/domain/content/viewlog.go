package content

import (
	"context"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ViewLog is an append-only record of a post view
type ViewLog struct {
	shared.BaseEntity
	PostID    uuid.UUID
	ViewerIP  string
	UserAgent string
	ViewedAt  time.Time
}

// TableName returns the table name for GORM
func (ViewLog) TableName() string {
	return "view_logs"
}

// NewViewLog records a view of a post
func NewViewLog(postID uuid.UUID, viewerIP, userAgent string) (*ViewLog, error) {
	if postID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POST_ID", "Post ID cannot be empty")
	}

	return &ViewLog{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		ViewerIP:   viewerIP,
		UserAgent:  userAgent,
		ViewedAt:   time.Now(),
	}, nil
}

// ViewLogRepository defines the interface for view log persistence
type ViewLogRepository interface {
	Create(ctx context.Context, log *ViewLog) error
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}
