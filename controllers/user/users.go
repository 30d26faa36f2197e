package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/auth"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

type UpdateUserInput struct {
	Username    *string `json:"username"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", middleware.CurrentUserID(c)).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("User not found"))
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PATCH /user updates the caller's own profile. Email and role are not
// editable here.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", middleware.CurrentUserID(c)).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("User not found"))
			return
		}

		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Address != nil {
			user.Address = *input.Address
		}

		if err := db.Save(&user).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /user/change-password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", middleware.CurrentUserID(c)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("User not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		if err := auth.CheckPassword(user.PasswordHash, input.OldPassword); err != nil {
			apperr.Respond(c, apperr.Validation("Old password is not correct"))
			return
		}

		hash, err := auth.HashPassword(input.NewPassword)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
