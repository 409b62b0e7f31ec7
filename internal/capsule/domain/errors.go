package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// Capsule errors with stable machine-readable codes.
var (
	// ErrCapsuleNotFound indicates a capsule with the specified id was not found.
	ErrCapsuleNotFound = errors.NewCoded(errors.ErrNotFound, "CAPSULE_NOT_FOUND", "Capsule not found")

	// ErrMissingCapsuleID indicates a mint request without a capsule id.
	ErrMissingCapsuleID = errors.NewCoded(
		errors.ErrInvalidInput,
		"MISSING_CAPSULE_ID",
		"Capsule ID is required",
	)

	// ErrCapsuleAccessDenied indicates the caller may not view the capsule.
	ErrCapsuleAccessDenied = errors.NewCoded(
		errors.ErrForbidden,
		"CAPSULE_ACCESS_DENIED",
		"You do not have access to this capsule",
	)
)

// OwnershipRequiredError builds the error for a mint attempt on somebody
// else's capsule. The body names the capsule and its actual owner.
func OwnershipRequiredError(capsuleID uuid.UUID, owner string) error {
	return errors.NewCoded(
		errors.ErrForbidden,
		"CAPSULE_OWNERSHIP_REQUIRED",
		"Only the capsule owner can mint it",
	).
		WithContext("capsuleId", capsuleID.String()).
		WithContext("owner", owner)
}

// AlreadyMintedError builds the error for a repeated mint, carrying the
// existing token id.
func AlreadyMintedError(tokenID string) error {
	return errors.NewCoded(errors.ErrConflict, "ALREADY_MINTED", "Capsule has already been minted").
		WithContext("nftTokenId", tokenID)
}

// MintError builds the error returned when minting fails to persist.
func MintError(capsuleID uuid.UUID) error {
	return errors.NewCoded(errors.ErrInternal, "MINT_ERROR", "Failed to mint capsule").
		WithContext("capsuleId", capsuleID.String())
}

// QuotaExceededError builds the error for a capsule creation beyond the
// author's monthly tier quota.
func QuotaExceededError(tier identityDomain.Tier, quota int64) error {
	return errors.NewCoded(
		errors.ErrForbidden,
		"CAPSULE_QUOTA_EXCEEDED",
		"Monthly capsule quota for your tier has been reached",
	).
		WithContext("tier", tier.String()).
		WithContext("quota", quota)
}

// AlreadyCertifiedError builds the error for certifying a capsule that
// already holds an active certification.
func AlreadyCertifiedError(certifiedAt time.Time) error {
	return errors.NewCoded(errors.ErrConflict, "ALREADY_CERTIFIED", "Capsule is already certified").
		WithContext("certificationDate", certifiedAt.UTC().Format(time.RFC3339))
}
