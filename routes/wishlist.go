package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	wishlistControllers "github.com/shopora/shopora-api/controllers/wishlist"
	"github.com/shopora/shopora-api/middleware"
)

// SetupWishlistRoutes registers the wishlist endpoints.
func SetupWishlistRoutes(r *gin.Engine, db *gorm.DB) {
	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.ValidateToken)
	{
		wishlist.GET("", wishlistControllers.ListWishlist(db))
		wishlist.POST("", wishlistControllers.AddWishlistItem(db))
		wishlist.DELETE("/:id", wishlistControllers.RemoveWishlistItem(db))
	}
}
