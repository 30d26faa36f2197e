package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/models"
)

type CreateCategoryInput struct {
	Name     string  `json:"name" binding:"required"`
	Slug     string  `json:"slug" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type UpdateCategoryInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	ParentID *string `json:"parent_id"`
}

// categoryCreatesCycle walks up from the proposed parent; reaching the
// category itself means the new edge would close a loop.
func categoryCreatesCycle(db *gorm.DB, categoryID, parentID string) (bool, error) {
	current := parentID
	for current != "" {
		if current == categoryID {
			return true, nil
		}
		var parent models.Category
		if err := db.Select("parent_id").First(&parent, "id = ?", current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		if parent.ParentID == nil {
			return false, nil
		}
		current = *parent.ParentID
	}
	return false, nil
}

// CreateCategory adds a category, validating the parent link.
func CreateCategory(db *gorm.DB, input CreateCategoryInput) (*models.Category, error) {
	if input.ParentID != nil {
		var parent models.Category
		if err := db.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("parent category does not exist")
			}
			return nil, err
		}
	}

	category := models.Category{
		Name:     input.Name,
		Slug:     input.Slug,
		ParentID: input.ParentID,
	}

	err := models.CreateWithCustomID(db, "categories", "CAT", func(tx *gorm.DB, customID string) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("name = ? OR slug = ?", input.Name, input.Slug).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("a category with this name or slug already exists")
		}
		category.CustomID = customID
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial update, rejecting parent links that
// would create a cycle.
func UpdateCategory(db *gorm.DB, categoryID string, input UpdateCategoryInput) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}
	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			return nil, apperr.Validation("a category cannot be its own parent")
		}
		var parent models.Category
		if err := db.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("parent category does not exist")
			}
			return nil, err
		}
		cycle, err := categoryCreatesCycle(db, category.ID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, apperr.Validation("setting this parent would create a category cycle")
		}
		category.ParentID = input.ParentID
	}

	if err := db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a category with this name or slug already exists")
		}
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category. Its products and child categories
// are detached, not deleted.
func DeleteCategory(db *gorm.DB, categoryID string) error {
	var category models.Category
	if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Category not found")
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", categoryID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// -------- Handlers --------

// GET /shop/categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /shop/categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("Category not found"))
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// POST /shop/categories
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		category, err := CreateCategory(db, input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// PATCH /shop/categories/:id
func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		category, err := UpdateCategory(db, c.Param("id"), input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /shop/categories/:id
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteCategory(db, c.Param("id")); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
