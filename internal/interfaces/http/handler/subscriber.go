package handler

import (
	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/gin-gonic/gin"
)

// SubscriberHandler serves newsletter opt-in routes
type SubscriberHandler struct {
	BaseHandler
	subscriberService *publishing.SubscriberService
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(subscriberService *publishing.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscriberService: subscriberService}
}

// Subscribe handles POST /subscribers
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req publishing.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	subscriber, err := h.subscriberService.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, subscriber)
}

// Verify handles POST /subscribers/verify
func (h *SubscriberHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.subscriberService.VerifySubscriber(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
