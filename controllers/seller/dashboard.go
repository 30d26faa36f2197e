package sellerControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

type topProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// GET /seller/dashboard-stats
func DashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := middleware.CurrentUserID(c)
		sellerProducts := db.Model(&models.Product{}).Where("seller_id = ?", sellerID)

		var totalProducts int64
		if err := sellerProducts.Session(&gorm.Session{}).Count(&totalProducts).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var totalStockValue float64
		if err := sellerProducts.Session(&gorm.Session{}).
			Select("COALESCE(SUM(price * stock), 0)").
			Scan(&totalStockValue).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var activeProducts int64
		if err := sellerProducts.Session(&gorm.Session{}).
			Where("is_active = ?", true).
			Count(&activeProducts).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var categoriesCount int64
		if err := sellerProducts.Session(&gorm.Session{}).
			Where("category_id IS NOT NULL").
			Distinct("category_id").
			Count(&categoriesCount).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		var topByStock []topProduct
		if err := db.Model(&models.Product{}).
			Select("name, stock").
			Where("seller_id = ?", sellerID).
			Order("stock DESC").
			Limit(5).
			Scan(&topByStock).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_products":        totalProducts,
			"total_stock_value":     totalStockValue,
			"active_products_count": activeProducts,
			"categories_count":      categoriesCount,
			"top_products_by_stock": topByStock,
		})
	}
}
