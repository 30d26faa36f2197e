package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

// DisableProduct soft-disables a product instead of deleting it, so
// order items keep a valid product reference.
func DisableProduct(db *gorm.DB, productID, actorID string, actorRole models.Role) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return err
	}

	if product.SellerID != actorID && actorRole != models.RoleAdmin {
		return apperr.Forbidden("You do not own this product")
	}

	return db.Model(&product).Update("is_active", false).Error
}

// DELETE /shop/products/:id
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := DisableProduct(db, c.Param("id"),
			middleware.CurrentUserID(c), middleware.CurrentRole(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product disabled successfully"})
	}
}
