package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/shopora/shopora-api/controllers/product"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

// SetupShopRoutes registers the catalog endpoints. Reads are public;
// writes require a token and the appropriate role.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	shop := r.Group("/shop")
	{
		// ──────────────── Categories ────────────────
		shop.GET("/categories", productControllers.GetAllCategories(db))
		shop.GET("/categories/:id", productControllers.GetCategoryByID(db))
		shop.POST("/categories", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin), productControllers.CreateCategoryHandler(db))
		shop.PATCH("/categories/:id", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin), productControllers.UpdateCategoryHandler(db))
		shop.DELETE("/categories/:id", middleware.ValidateToken,
			middleware.RequireRole(models.RoleAdmin), productControllers.DeleteCategoryHandler(db))

		// ──────────────── Products ────────────────
		shop.GET("/products", productControllers.GetProducts(db))
		shop.GET("/products/my-products", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller), productControllers.GetMyProducts(db))
		shop.GET("/products/:id", productControllers.GetProductByID(db))
		shop.POST("/products", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller), productControllers.CreateProductHandler(db))
		shop.PATCH("/products/:id", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin), productControllers.UpdateProductHandler(db))
		shop.DELETE("/products/:id", middleware.ValidateToken,
			middleware.RequireRole(models.RoleSeller, models.RoleAdmin), productControllers.DeleteProductHandler(db))

		// ──────────────── Reviews ────────────────
		shop.GET("/products/:id/reviews", productControllers.ListReviews(db))
		shop.POST("/products/:id/reviews", middleware.ValidateToken,
			middleware.RequireRole(models.RoleBuyer), productControllers.CreateReviewHandler(db))
	}
}
