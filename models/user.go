package models

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a request string to a Role. Admin cannot be
// self-assigned at signup, so it is not accepted here.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case string(RoleBuyer):
		return RoleBuyer, nil
	case string(RoleSeller):
		return RoleSeller, nil
	default:
		return "", errors.New("invalid role, choose from: buyer, seller")
	}
}

type User struct {
	Base
	CustomID     string `gorm:"uniqueIndex" json:"custom_id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	Role         Role   `gorm:"type:VARCHAR(10);default:'buyer'" json:"role"`
}
