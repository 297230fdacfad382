package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
)

// RequireAdmin rejects requests whose token does not carry the admin role.
// This is a fast gate only; the moderation service re-checks against the
// stored user row inside its transactions.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != string(domain.RoleAdmin) {
			common.ErrorResponse(c, http.StatusForbidden, "admin privileges required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
