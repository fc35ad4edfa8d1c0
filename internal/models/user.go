package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
// PasswordHash is nil for accounts created through Google OAuth only.
type UserDB struct {
	UserID                 uuid.UUID  `json:"id" db:"user_id"`
	DisplayName            string     `json:"display_name" db:"display_name"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           *string    `json:"-" db:"password_hash"`
	GoogleID               *string    `json:"google_id,omitempty" db:"google_id"`
	GoogleAccessToken      *string    `json:"-" db:"google_access_token"`
	GoogleRefreshToken     *string    `json:"-" db:"google_refresh_token"`
	PhotoURL               *string    `json:"photo_url,omitempty" db:"photo_url"`
	IsVerified             bool       `json:"is_verified" db:"is_verified"`
	EmailVerificationToken *string    `json:"-" db:"email_verification_token"`
	PasswordResetToken     *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires   *time.Time `json:"-" db:"password_reset_expires"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}

// GoogleProfile is the subset of the Google userinfo payload this service uses.
type GoogleProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"picture"`
}
