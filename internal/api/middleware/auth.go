package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/models"
)

// Gin context keys for the authenticated identity.
const (
	userIDKey = "userID"
	roleKey   = "role"
)

// UserID returns the authenticated user's ID from the gin context,
// empty when unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(string)
	return userID
}

// Role returns the authenticated user's role from the gin context.
func Role(c *gin.Context) string {
	r, _ := c.Get(roleKey)
	role, _ := r.(string)
	return role
}

// RequireAuth validates the Bearer token and injects the caller's ID
// and role into the gin context. Missing or invalid tokens abort with
// 401.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// OwnerOnly restricts a route to callers with the owner role. It
// assumes RequireAuth has already run.
func OwnerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Access denied for this role"})
			return
		}
		c.Next()
	}
}
