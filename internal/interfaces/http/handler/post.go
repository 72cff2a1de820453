package handler

import (
	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostHandler serves the article workflow routes
type PostHandler struct {
	BaseHandler
	postService    *publishing.PostService
	commentService *publishing.CommentService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *publishing.PostService, commentService *publishing.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

// Create handles POST /posts/articles
func (h *PostHandler) Create(c *gin.Context) {
	var req publishing.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	article, err := h.postService.CreateArticle(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, article)
}

// Get handles GET /posts/articles/:id — the parameter is an ID or a slug
func (h *PostHandler) Get(c *gin.Context) {
	article, err := h.postService.GetArticle(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Update handles PATCH /posts/articles/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req publishing.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	article, err := h.postService.UpdateArticle(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete handles DELETE /posts/articles/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	if err := h.postService.DeleteArticle(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /posts/articles (?category= routes to the public
// category listing)
func (h *PostHandler) List(c *gin.Context) {
	if categorySlug, exists := c.GetQuery("category"); exists {
		articles, err := h.postService.GetPublishedByCategory(c.Request.Context(), categorySlug)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, articles)
		return
	}

	var filter publishing.ArticleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	articles, total, err := h.postService.ListArticles(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// Featured handles GET /posts/articles/featured
func (h *PostHandler) Featured(c *gin.Context) {
	articles, err := h.postService.GetFeaturedArticles(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, articles)
}

// Approve handles POST /posts/articles/:id/approve
func (h *PostHandler) Approve(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	article, err := h.postService.ApproveArticle(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Reject handles POST /posts/articles/:id/reject
func (h *PostHandler) Reject(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	article, err := h.postService.RejectArticle(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// RecordView handles POST /posts/articles/:id/view
func (h *PostHandler) RecordView(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	err := h.postService.RecordView(c.Request.Context(), id, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddComment handles POST /posts/articles/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	var req publishing.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// ListComments handles GET /posts/articles/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListForPost(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comments)
}

func (h *PostHandler) articleID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid article id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid article id")
		return uuid.Nil, false
	}
	return id, true
}
