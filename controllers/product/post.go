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

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       int      `json:"stock" binding:"min=0"`
	Image       string   `json:"image"`
	CategoryID  *string  `json:"category_id"`
}

// CreateProduct inserts a product owned by the seller and assigns its
// PRD custom ID.
func CreateProduct(db *gorm.DB, sellerID string, input CreateProductInput) (*models.Product, error) {
	if input.SalePrice != nil && *input.SalePrice <= 0 {
		return nil, apperr.Validation("sale_price must be greater than zero")
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("category does not exist")
			}
			return nil, err
		}
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Stock:       input.Stock,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
		SellerID:    sellerID,
		IsActive:    true,
	}

	err := models.CreateWithCustomID(db, "products", "PRD", func(tx *gorm.DB, customID string) error {
		product.CustomID = customID
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}

	if err := models.AttachProductStats(db, []*models.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

// POST /shop/products
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		product, err := CreateProduct(db, middleware.CurrentUserID(c), input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
