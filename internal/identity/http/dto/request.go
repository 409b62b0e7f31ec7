// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/guardianchain/capsule-api/internal/validation"
)

// RegisterRequest contains the parameters for registering a new user.
type RegisterRequest struct {
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	WalletAddress *string `json:"wallet_address"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 64),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
		validation.Field(&r.WalletAddress,
			validation.Length(4, 255),
		),
	)
}

// LoginRequest contains the parameters for opening a session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}
