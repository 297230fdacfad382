package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/internal/service"
)

// AuthHandler handles registration, login, and token refresh
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		common.RespondError(c, err, "registration failed")
		return
	}
	common.Created(c, user.ToProfile())
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	pair, user, err := h.authService.Login(&req)
	if err != nil {
		common.RespondError(c, err, "login failed")
		return
	}
	common.Success(c, gin.H{"tokens": pair, "user": user.ToProfile()})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		common.RespondError(c, err, "token refresh failed")
		return
	}
	common.Success(c, pair)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(middleware.GetUserID(c))
	if err != nil {
		common.RespondError(c, err, "failed to load current user")
		return
	}
	common.Success(c, user)
}
