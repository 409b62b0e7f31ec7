// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// UserResponse represents a user in API responses (excludes password hash).
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	Tier          string    `json:"tier"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *identityDomain.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		Username:      user.Username,
		WalletAddress: user.WalletAddress,
		Tier:          user.Tier.String(),
		Role:          string(user.Role),
		IsActive:      user.IsActive,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// LoginResponse contains the result of a successful login.
// SECURITY: The token is only returned once and must be saved securely.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
