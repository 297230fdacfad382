package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/pkg/jwt"
)

// JWTAuth JWT authentication middleware. Stores the token's user id and role
// in the context; services re-read the user row before trusting either.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from context; zero when
// unauthenticated
func GetUserID(c *gin.Context) uint64 {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	if id, ok := v.(uint64); ok {
		return id
	}
	return 0
}

// GetUserRole extracts the token role from context
func GetUserRole(c *gin.Context) string {
	v, exists := c.Get("role")
	if !exists {
		return ""
	}
	if role, ok := v.(string); ok {
		return role
	}
	return ""
}
