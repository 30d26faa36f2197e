package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopora/shopora-api/auth"
	"github.com/shopora/shopora-api/models"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "role"
)

// ValidateToken checks the bearer access token and stores the principal
// (user id + role) in the request context.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims, err := auth.ParseToken(tokenString, "access")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set(ctxUserIDKey, claims.UserID)
	c.Set(ctxRoleKey, string(claims.Role))

	c.Next()
}

// RequireRole gates a route to the given roles. Must run after
// ValidateToken.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := CurrentRole(c)
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's id, or "" when the
// request is anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

func CurrentRole(c *gin.Context) models.Role {
	return models.Role(c.GetString(ctxRoleKey))
}
