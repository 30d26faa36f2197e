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

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
	CategoryID  *string  `json:"category_id"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateProduct applies a partial update to a product. Only the owning
// seller (or an admin) may mutate it; the URL already names the product,
// so a foreign owner gets Forbidden rather than NotFound.
func UpdateProduct(db *gorm.DB, productID, actorID string, actorRole models.Role, input UpdateProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	if product.SellerID != actorID && actorRole != models.RoleAdmin {
		return nil, apperr.Forbidden("You do not own this product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperr.Validation("price must be greater than zero")
		}
		product.Price = *input.Price
	}
	if input.SalePrice != nil {
		if *input.SalePrice <= 0 {
			return nil, apperr.Validation("sale_price must be greater than zero")
		}
		product.SalePrice = input.SalePrice
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperr.Validation("stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("category does not exist")
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if err := db.Save(&product).Error; err != nil {
		return nil, err
	}

	if err := models.AttachProductStats(db, []*models.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

// PATCH /shop/products/:id
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		product, err := UpdateProduct(db, c.Param("id"),
			middleware.CurrentUserID(c), middleware.CurrentRole(c), input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
