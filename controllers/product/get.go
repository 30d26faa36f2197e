package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/models"
)

// GET /shop/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Preload("Category").
			Preload("Seller").
			Preload("Reviews.User").
			Where("id = ? AND is_active = ?", c.Param("id"), true).
			First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.NotFound("Product not found"))
			return
		}
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := models.AttachProductStats(db, []*models.Product{&product}); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
