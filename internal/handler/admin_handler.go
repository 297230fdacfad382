package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/internal/repository"
	"github.com/talkbase/forum-backend/internal/service"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	moderationService service.ModerationService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	f := repository.UserFilter{
		Query:          c.Query("q"),
		IncludeDeleted: true,
	}
	result, err := h.moderationService.ListUsers(parsePagination(c), f)
	if err != nil {
		common.RespondError(c, err, "failed to list users")
		return
	}
	common.SuccessWithMeta(c, result.Items, result.Meta())
}

// SetRole handles PUT /api/admin/users/:id/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.moderationService.SetRole(middleware.GetUserID(c), id, req.Role)
	if err != nil {
		common.RespondError(c, err, "failed to change role")
		return
	}
	common.Success(c, user)
}

// Ban handles POST /api/admin/users/:id/ban
func (h *AdminHandler) Ban(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req domain.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.moderationService.Ban(middleware.GetUserID(c), id, req.Reason, req.Until)
	if err != nil {
		common.RespondError(c, err, "failed to ban user")
		return
	}
	common.Success(c, user)
}

// Unban handles DELETE /api/admin/users/:id/ban
func (h *AdminHandler) Unban(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.moderationService.Unban(middleware.GetUserID(c), id)
	if err != nil {
		common.RespondError(c, err, "failed to unban user")
		return
	}
	common.Success(c, user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.moderationService.DeleteUser(middleware.GetUserID(c), id); err != nil {
		common.RespondError(c, err, "failed to delete user")
		return
	}
	common.Success(c, gin.H{"deleted": true})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.moderationService.Stats()
	if err != nil {
		common.RespondError(c, err, "failed to load stats")
		return
	}
	common.Success(c, stats)
}
