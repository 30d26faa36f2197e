package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/auth"
)

// SetupAuthRoutes registers the public /auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/refresh", auth.Refresh(db))
		authGroup.POST("/logout", auth.Logout(db))
	}
}
