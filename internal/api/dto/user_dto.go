package dto

import (
	"time"

	"github.com/spec-kit/guest-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	PrimaryPhone   string  `json:"primary_phone"`
	SecondaryPhone *string `json:"secondary_phone"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest carries the refresh token to invalidate.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public projection of a user; never the password hash.
type UserResponse struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Role           domain.Role `json:"role"`
	PrimaryPhone   string      `json:"primary_phone"`
	SecondaryPhone *string     `json:"secondary_phone"`
	Active         bool        `json:"active"`
	CreatedAt      time.Time   `json:"created_at"`
}

// LoginResponse bundles the token pair with the user projection.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// RefreshResponse returns the newly minted access token.
type RefreshResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewUserResponse maps a domain user to its public projection.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		PrimaryPhone:   user.PrimaryPhone,
		SecondaryPhone: user.SecondaryPhone,
		Active:         user.Active,
		CreatedAt:      user.CreatedAt,
	}
}
