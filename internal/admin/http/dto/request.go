// Package dto contains request and response types for admin HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"
)

// UpdateTierRequest represents the request body for changing a user's tier.
type UpdateTierRequest struct {
	Tier string `json:"tier"`
}

// Validate validates the update tier request.
func (r UpdateTierRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Tier, validation.Required.Error("tier is required")),
	)
}
