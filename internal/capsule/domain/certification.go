package domain

import (
	"time"

	"github.com/google/uuid"
)

// CertificationStatus is the lifecycle state of a certification record.
type CertificationStatus string

const (
	CertificationStatusApproved CertificationStatus = "approved"
	CertificationStatusRevoked  CertificationStatus = "revoked"
)

// Certification represents a DAO certification of a capsule. Records are
// append-only: revocation flips the status, it never deletes the row.
type Certification struct {
	ID           uuid.UUID           `json:"id"`
	CapsuleID    uuid.UUID           `json:"capsule_id"`
	CertifierID  uuid.UUID           `json:"certifier_id"`
	Status       CertificationStatus `json:"status"`
	VotesFor     int                 `json:"votes_for"`
	VotesAgainst int                 `json:"votes_against"`
	CertifiedAt  time.Time           `json:"certified_at"`
	ExpiresAt    time.Time           `json:"expires_at"`
	RevokedAt    *time.Time          `json:"revoked_at"`
}

// IsActive reports whether the certification is approved, not revoked and
// not expired.
func (c *Certification) IsActive(now time.Time) bool {
	return c.Status == CertificationStatusApproved && c.RevokedAt == nil && now.Before(c.ExpiresAt)
}
