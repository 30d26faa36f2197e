package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
	"stock":      true,
}

// GET /shop/products lists active products with search, category and
// price-range filters.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		if !sortableColumns[sortBy] {
			apperr.Respond(c, apperr.Validation("Invalid sort_by"))
			return
		}

		query := db.Model(&models.Product{}).
			Preload("Category").
			Where("is_active = ?", true)

		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern)
		}

		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				apperr.Respond(c, apperr.Validation("Invalid min_price"))
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				apperr.Respond(c, apperr.Validation("Invalid max_price"))
				return
			}
		}

		if categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var products []*models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := models.AttachProductStats(db, products); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /shop/products/my-products lists the seller's own products,
// inactive ones included, so they can manage all their listings.
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []*models.Product
		if err := db.Preload("Category").
			Where("seller_id = ?", middleware.CurrentUserID(c)).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := models.AttachProductStats(db, products); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
