package handler

import (
	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommentHandler serves comment moderation routes
type CommentHandler struct {
	BaseHandler
	commentService *publishing.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *publishing.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Moderate handles POST /comments/:id/moderate
func (h *CommentHandler) Moderate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid comment id")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid comment id")
		return
	}

	var req publishing.ModerateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	comment, err := h.commentService.Moderate(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comment)
}
