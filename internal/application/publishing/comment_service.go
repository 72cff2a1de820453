package publishing

import (
	"context"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentService handles reader remarks on articles. New comments always
// enter PENDING and become visible only after moderation.
type CommentService struct {
	commentRepo content.CommentRepository
	postRepo    content.PostRepository
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo content.CommentRepository,
	postRepo content.PostRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// AddComment creates a pending comment on a published article. A nil actor
// leaves an anonymous comment.
func (s *CommentService) AddComment(ctx context.Context, actor *identity.Actor, postID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPubliclyReadable() {
		return nil, shared.ErrNotFound
	}

	var authorID *uuid.UUID
	if actor != nil {
		authorID = &actor.UserID
	}

	comment, err := content.NewComment(postID, authorID, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp := ToCommentResponse(comment)
	return &resp, nil
}

// Moderate approves or rejects a pending comment. Editors and admins only.
func (s *CommentService) Moderate(ctx context.Context, actor *identity.Actor, commentID uuid.UUID, req ModerateCommentRequest) (*CommentResponse, error) {
	if err := identity.Authorize(actor, identity.ActionModerateComment, identity.Resource{}); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	switch content.CommentStatus(req.Status) {
	case content.CommentStatusApproved:
		err = comment.Approve()
	case content.CommentStatusRejected:
		err = comment.Reject()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unknown moderation status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment moderated",
		zap.String("comment_id", comment.ID.String()),
		zap.String("status", string(comment.Status)),
		zap.String("moderated_by", actor.UserID.String()))

	resp := ToCommentResponse(comment)
	return &resp, nil
}

// ListForPost returns comments on an article. Editors and admins see all
// statuses; everyone else sees approved comments only.
func (s *CommentService) ListForPost(ctx context.Context, actor *identity.Actor, postID uuid.UUID) ([]CommentResponse, error) {
	staff := actor != nil && (actor.Role == identity.RoleAdmin || actor.Role == identity.RoleEditor)

	var status *content.CommentStatus
	if !staff {
		approved := content.CommentStatusApproved
		status = &approved
	}

	comments, err := s.commentRepo.FindByPost(ctx, postID, status)
	if err != nil {
		return nil, err
	}

	responses := make([]CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = ToCommentResponse(c)
	}
	return responses, nil
}
