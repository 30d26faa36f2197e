package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Catalog: public reads, role-gated writes
	SetupShopRoutes(r, db)

	// Profile routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Cart + checkout (buyer)
	SetupSalesRoutes(r, db)

	// Seller dashboard and order management
	SetupSellerRoutes(r, db)

	// Wishlist
	SetupWishlistRoutes(r, db)
}
