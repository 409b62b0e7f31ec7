package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque server-side login session. Only the SHA-256 hash of the
// session token is stored; the plain token is returned once at login.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the session can authenticate requests at the given time.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
