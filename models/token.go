package models

import "time"

// RevokedToken blacklists a refresh token by its jti claim. Rows past
// ExpiresAt are dead weight only; the token they block is expired anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:36" json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `gorm:"autoCreateTime" json:"revoked_at"`
}
