package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/shopora/shopora-api/controllers/user"
	"github.com/shopora/shopora-api/middleware"
)

// SetupUserRoutes registers the /user/* profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PATCH("", userControllers.UpdateUser(db))
		userGroup.POST("/change-password", userControllers.ChangePassword(db))
	}
}
