package handler

import (
	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler serves media upload and registration routes
type MediaHandler struct {
	BaseHandler
	mediaService *publishing.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *publishing.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RequestUpload handles POST /media/upload-url
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	var req publishing.RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.mediaService.RequestUpload(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Register handles POST /media
func (h *MediaHandler) Register(c *gin.Context) {
	var req publishing.RegisterMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	media, err := h.mediaService.RegisterMedia(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, media)
}

// ListMine handles GET /media
func (h *MediaHandler) ListMine(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.Filter{Page: listReq.Page, PageSize: listReq.PageSize}
	media, total, err := h.mediaService.ListMine(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, media, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid media id")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid media id")
		return
	}

	if err := h.mediaService.DeleteMedia(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
