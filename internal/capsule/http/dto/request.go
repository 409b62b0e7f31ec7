// Package dto contains request and response types for capsule HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"
)

// CreateCapsuleRequest represents the request body for creating a capsule.
type CreateCapsuleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate validates the create capsule request.
func (r CreateCapsuleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// MintRequest represents the request body for minting a capsule. CapsuleID
// presence is checked in the handler so the missing-id case maps to its own
// error code.
type MintRequest struct {
	CapsuleID string `json:"capsule_id"`
}
