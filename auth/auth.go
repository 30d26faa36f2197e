package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/models"
)

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Username    string `json:"username" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// POST /auth/signup
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		role := models.RoleBuyer
		if req.Role != "" {
			parsed, err := models.ParseRole(req.Role)
			if err != nil {
				apperr.Respond(c, apperr.Validation(err.Error()))
				return
			}
			role = parsed
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: hash,
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PhoneNumber:  req.PhoneNumber,
			Address:      req.Address,
			Role:         role,
		}

		err = models.CreateWithCustomID(db, "users", "USR", func(tx *gorm.DB, customID string) error {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.Conflict("email already registered")
			}
			user.CustomID = customID
			return tx.Create(&user).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		pair, err := IssueTokenPair(&user)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully. You are now logged in.",
			"user":    user,
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.Authentication("Invalid credentials"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		if err := CheckPassword(user.PasswordHash, req.Password); err != nil {
			apperr.Respond(c, apperr.Authentication("Invalid credentials"))
			return
		}

		pair, err := IssueTokenPair(&user)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}

// POST /auth/refresh rotates the pair: the presented refresh token is
// blacklisted so it cannot be replayed.
func Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		claims, err := ParseToken(req.RefreshToken, tokenTypeRefresh)
		if err != nil {
			apperr.Respond(c, apperr.Authentication("Invalid or expired token"))
			return
		}

		revoked, err := isRevoked(db, claims.JTI)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if revoked {
			apperr.Respond(c, apperr.Authentication("Token has been revoked"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			apperr.Respond(c, apperr.Authentication("Invalid or expired token"))
			return
		}

		if err := revokeToken(db, claims); err != nil {
			apperr.Respond(c, err)
			return
		}

		pair, err := IssueTokenPair(&user)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}

// POST /auth/logout
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		claims, err := ParseToken(req.RefreshToken, tokenTypeRefresh)
		if err != nil {
			apperr.Respond(c, apperr.Validation("Invalid or expired token"))
			return
		}

		if err := revokeToken(db, claims); err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

func isRevoked(db *gorm.DB, jti string) (bool, error) {
	var count int64
	if err := db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func revokeToken(db *gorm.DB, claims *TokenClaims) error {
	expiresAt := claims.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(refreshTokenTTL)
	}
	err := db.Create(&models.RevokedToken{JTI: claims.JTI, ExpiresAt: expiresAt}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already blacklisted; logout is idempotent.
		return nil
	}
	return err
}
