package handler

import (
	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MagazineHandler serves curated magazine issue routes
type MagazineHandler struct {
	BaseHandler
	magazineService *publishing.MagazineService
}

// NewMagazineHandler creates a new magazine handler
func NewMagazineHandler(magazineService *publishing.MagazineService) *MagazineHandler {
	return &MagazineHandler{magazineService: magazineService}
}

// Create handles POST /magazines
func (h *MagazineHandler) Create(c *gin.Context) {
	var req publishing.CreateMagazineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	magazine, err := h.magazineService.CreateMagazine(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, magazine)
}

// List handles GET /magazines
func (h *MagazineHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  "issue_number",
		OrderDir: "desc",
	}

	magazines, total, err := h.magazineService.GetMagazines(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, magazines, total, filter.Page, filter.PageSize)
}

// GetBySlug handles GET /magazines/:slug
func (h *MagazineHandler) GetBySlug(c *gin.Context) {
	magazine, err := h.magazineService.GetMagazineBySlug(c.Request.Context(), middleware.GetActor(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, magazine)
}

// Approve handles POST /magazines/:id/approve
func (h *MagazineHandler) Approve(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid magazine id")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid magazine id")
		return
	}

	magazine, err := h.magazineService.ApproveMagazine(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, magazine)
}
