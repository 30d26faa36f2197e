package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/shopora/shopora-api/controllers/product"
	sellerControllers "github.com/shopora/shopora-api/controllers/seller"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

// SetupSellerRoutes registers the seller dashboard endpoints.
func SetupSellerRoutes(r *gin.Engine, db *gorm.DB) {
	seller := r.Group("/seller")
	seller.Use(middleware.ValidateToken, middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	{
		seller.GET("/dashboard-stats", sellerControllers.DashboardStats(db))
		seller.GET("/orders", sellerControllers.ListSellerOrders(db))
		seller.PATCH("/orders/:id/update-status", sellerControllers.UpdateOrderStatusHandler(db))
		seller.GET("/products/export", productControllers.ExportProductsToExcel(db))
	}
}
