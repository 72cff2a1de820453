package handler

import (
	"time"

	"github.com/newsroom/backend/internal/application/query"
	apptaxonomy "github.com/newsroom/backend/internal/application/taxonomy"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCategoryRequest represents a request to create or resolve a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	Slug     string     `json:"slug" binding:"omitempty,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// TaxonomyHandler serves category and tag routes
type TaxonomyHandler struct {
	BaseHandler
	taxonomyService *apptaxonomy.Service
	readService     *query.ReadService
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(taxonomyService *apptaxonomy.Service, readService *query.ReadService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
		readService:     readService,
	}
}

// ListCategories handles GET /categories. The public listing carries the
// published article count per category.
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.readService.GetCategoriesWithCounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// CreateCategory handles POST /categories. Resolution is idempotent: an
// existing slug returns the existing category.
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.taxonomyService.ResolveCategory(c.Request.Context(), req.Name, req.Slug, req.ParentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid category id")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid category id")
		return
	}

	if err := h.taxonomyService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CategoryArticles handles GET /categories/:slug/articles
func (h *TaxonomyHandler) CategoryArticles(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	articles, total, err := h.readService.GetArticlesByCategorySlug(
		c.Request.Context(), c.Param("slug"), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, listReq.Page, listReq.PageSize)
}

// ListTags handles GET /tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomyService.ListTags(c.Request.Context(), shared.Filter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	h.Success(c, responses)
}

func toCategoryResponse(category *taxonomy.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
		CreatedAt:   category.CreatedAt,
	}
}
