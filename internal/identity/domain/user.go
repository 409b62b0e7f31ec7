package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered platform member.
type User struct {
	ID            uuid.UUID // Unique identifier (UUIDv7)
	Email         string
	Username      string
	PasswordHash  string  //nolint:gosec // Argon2id hash, not plaintext
	WalletAddress *string // Optional on-chain wallet, nil until connected
	Tier          Tier
	Role          Role
	IsActive      bool // Deactivated accounts fail authentication
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MeetsAdmin reports whether the user passes the admin guard. The admin role
// flag and the top tiers both qualify.
func (u *User) MeetsAdmin() bool {
	return u.Role == RoleAdmin || u.Tier.AtLeast(TierSovereign)
}

// IsSovereign reports whether the user holds exactly the SOVEREIGN tier.
// Sovereign-gated routes accept only this tier, not the admin role.
func (u *User) IsSovereign() bool {
	return u.Tier == TierSovereign
}

// OwnsAuthorRef reports whether the user matches a capsule author reference,
// which may hold either a user id or an email address.
func (u *User) OwnsAuthorRef(author string) bool {
	return author == u.ID.String() || author == u.Email
}

// CreateUserInput carries the fields needed to register a user.
type CreateUserInput struct {
	Email         string
	Username      string
	Password      string
	WalletAddress *string
}
