package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

type AddWishlistInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddToWishlist saves a product for later. The (user, product) pair is
// unique; repeating it is a conflict.
func AddToWishlist(db *gorm.DB, userID, productID string) (*models.WishlistItem, error) {
	var product models.Product
	if err := db.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("product is already in your wishlist")
		}
		return nil, err
	}

	if err := db.Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GET /wishlist
func ListWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.WishlistItem
		if err := db.Preload("Product").
			Where("user_id = ?", middleware.CurrentUserID(c)).
			Order("created_at DESC").
			Find(&items).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /wishlist
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		item, err := AddToWishlist(db, middleware.CurrentUserID(c), input.ProductID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /wishlist/:id
func RemoveWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ? AND user_id = ?", c.Param("id"), middleware.CurrentUserID(c)).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			apperr.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("Wishlist item not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist item removed"})
	}
}
