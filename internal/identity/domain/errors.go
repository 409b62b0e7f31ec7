package domain

import (
	"github.com/guardianchain/capsule-api/internal/errors"
)

// Identity errors with stable machine-readable codes.
var (
	// ErrAuthRequired indicates the request carries no valid identity.
	ErrAuthRequired = errors.NewCoded(errors.ErrUnauthorized, "AUTH_REQUIRED", "Authentication required")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.NewCoded(
		errors.ErrUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
	)

	// ErrUserNotFound indicates a user with the specified id was not found.
	ErrUserNotFound = errors.NewCoded(errors.ErrNotFound, "USER_NOT_FOUND", "User not found")

	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.NewCoded(errors.ErrConflict, "EMAIL_TAKEN", "Email address is already registered")
)

// AdminRequiredError builds the error for a failed admin guard, carrying the
// caller's current tier in the response body.
func AdminRequiredError(current Tier) error {
	return errors.NewCoded(errors.ErrForbidden, "ADMIN_REQUIRED", "Admin access required").
		WithContext("currentTier", current.String())
}

// TierRequiredError builds the error for a failed minimum-tier guard.
func TierRequiredError(required, current Tier) error {
	return errors.NewCoded(errors.ErrForbidden, "TIER_REQUIRED", "Higher membership tier required").
		WithContext("requiredTier", required.String()).
		WithContext("currentTier", current.String())
}

// SovereignRequiredError builds the error for a failed sovereign guard.
func SovereignRequiredError(current Tier) error {
	return errors.NewCoded(errors.ErrForbidden, "SOVEREIGN_REQUIRED", "Sovereign tier required").
		WithContext("currentTier", current.String())
}

// InvalidTierError builds the error for an unknown tier name, listing the
// accepted values.
func InvalidTierError(name string) error {
	return errors.NewCoded(errors.ErrInvalidInput, "INVALID_TIER", "Invalid tier").
		WithContext("requestedTier", name).
		WithContext("validTiers", TierNames())
}
