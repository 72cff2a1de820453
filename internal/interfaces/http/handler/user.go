package handler

import (
	appidentity "github.com/newsroom/backend/internal/application/identity"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/interfaces/http/dto"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler serves user profile and administration routes
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /users/profile/:username
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		h.BadRequest(c, "username is required")
		return
	}

	profile, err := h.userService.GetProfileByUsername(c.Request.Context(), username)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateName handles POST /users/update-name
func (h *UserHandler) UpdateName(c *gin.Context) {
	var req appidentity.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.UpdateName(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangeRole handles POST /users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid user id")
		return
	}
	userID, _ := uuid.Parse(uri.ID)

	var req appidentity.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), middleware.GetActor(c), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := identity.UserFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Keyword:  listReq.Search,
	}
	if role := c.Query("role"); role != "" {
		r := identity.Role(role)
		filter.Role = &r
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}
