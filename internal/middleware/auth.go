package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/model"
	"github.com/scootsupport/scootsupport/internal/service"
)

const (
	// ContextKeyUserID 当前用户ID的上下文键
	ContextKeyUserID = "user_id"
	// ContextKeyUser 当前用户的上下文键
	ContextKeyUser = "user"
)

// RequireAuth 认证中间件
func RequireAuth(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		tokenValue := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenValue == authHeader || tokenValue == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		user, err := svc.Auth.ValidateToken(c.Request.Context(), tokenValue)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin 管理员中间件，必须在 RequireAuth 之后
func RequireAdmin(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		isAdmin, err := svc.Auth.IsAdmin(c.Request.Context(), userID)
		if err != nil || !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID 从上下文取当前用户ID
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetCurrentUser 从上下文取当前用户
func GetCurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
