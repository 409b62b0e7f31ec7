// Package usecase defines business logic interfaces for capsule operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// CapsuleRepository defines persistence operations for capsules.
// Implementations must support transaction-aware operations via context propagation.
type CapsuleRepository interface {
	// Create stores a new capsule in the repository.
	Create(ctx context.Context, capsule *capsuleDomain.Capsule) error

	// Get retrieves a capsule by ID. Returns ErrCapsuleNotFound if not found.
	Get(ctx context.Context, capsuleID uuid.UUID) (*capsuleDomain.Capsule, error)

	// CountByAuthorSince counts the author's capsules created at or after the
	// given time. Used for quota enforcement.
	CountByAuthorSince(ctx context.Context, author string, since time.Time) (int64, error)

	// SetMinted assigns the NFT token to an unminted capsule. Returns false
	// when the capsule already holds a token.
	SetMinted(ctx context.Context, capsuleID uuid.UUID, tokenID, txHash string) (bool, error)
}

// CertificationRepository defines persistence operations for certifications.
type CertificationRepository interface {
	// Create stores a new certification in the repository.
	Create(ctx context.Context, certification *capsuleDomain.Certification) error

	// GetActiveByCapsule retrieves the active certification for a capsule.
	// Returns ErrNotFound when none exists.
	GetActiveByCapsule(ctx context.Context, capsuleID uuid.UUID) (*capsuleDomain.Certification, error)

	// Revoke marks a certification as revoked at the given time.
	Revoke(ctx context.Context, certificationID uuid.UUID, at time.Time) error
}

// MintLogRepository defines persistence operations for mint attempt records.
type MintLogRepository interface {
	// Create appends a mint attempt record.
	Create(ctx context.Context, mintLog *capsuleDomain.MintLog) error

	// ListByCapsule returns mint attempts for a capsule, newest first.
	ListByCapsule(
		ctx context.Context,
		capsuleID uuid.UUID,
		limit, offset int,
	) ([]*capsuleDomain.MintLog, error)
}

// MintOutput carries the result of a successful mint.
type MintOutput struct {
	CapsuleID  uuid.UUID
	NFTTokenID string
	NFTTxHash  string
	MintedAt   time.Time
}

// StatusOutput carries a capsule's mint and certification state.
type StatusOutput struct {
	Capsule       *capsuleDomain.Capsule
	Certification *capsuleDomain.Certification
}

// CapsuleUseCase defines business logic operations for capsules.
type CapsuleUseCase interface {
	// Create stores a new capsule authored by the acting user.
	Create(
		ctx context.Context,
		actor *identityDomain.User,
		input *capsuleDomain.CreateCapsuleInput,
	) (*capsuleDomain.Capsule, error)

	// Get retrieves a capsule. Only the owner and admin-or-above callers may
	// view it; others receive ErrCapsuleAccessDenied.
	Get(ctx context.Context, actor *identityDomain.User, capsuleID uuid.UUID) (*capsuleDomain.Capsule, error)

	// Mint assigns an NFT token to the caller's capsule. Minting a capsule
	// twice fails with ALREADY_MINTED even under concurrent requests.
	Mint(ctx context.Context, actor *identityDomain.User, capsuleID uuid.UUID) (*MintOutput, error)

	// Status returns the capsule's mint state and active certification.
	Status(ctx context.Context, actor *identityDomain.User, capsuleID uuid.UUID) (*StatusOutput, error)

	// MintHistory lists the capsule's mint attempts, newest first. Access
	// follows the same ownership rules as Get.
	MintHistory(
		ctx context.Context,
		actor *identityDomain.User,
		capsuleID uuid.UUID,
		limit, offset int,
	) ([]*capsuleDomain.MintLog, error)
}

// CertificationUseCase defines business logic operations for DAO certifications.
type CertificationUseCase interface {
	// Certify records an approved certification for a capsule. Fails with
	// ALREADY_CERTIFIED when an active certification exists.
	Certify(
		ctx context.Context,
		actor *identityDomain.User,
		capsuleID uuid.UUID,
	) (*capsuleDomain.Certification, error)

	// Revoke marks the capsule's active certification as revoked. The record
	// is kept for history.
	Revoke(ctx context.Context, actor *identityDomain.User, capsuleID uuid.UUID) error
}
