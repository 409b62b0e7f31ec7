// Package audit records administrative mutations for later review.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Administrative actions recorded in the audit log.
const (
	ActionTierUpdate          = "tier_update"
	ActionCertifyCapsule      = "certify_capsule"
	ActionRevokeCertification = "revoke_certification"
)

// Entry is a single audit log row. Metadata holds action-specific detail and
// is stored as JSON.
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   uuid.UUID      `json:"actor_id"`
	Action    string         `json:"action"`
	TargetID  string         `json:"target_id"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewEntry builds an audit entry stamped with a fresh id and the current time.
func NewEntry(actorID uuid.UUID, action, targetID string, metadata map[string]any) *Entry {
	return &Entry{
		ID:        uuid.Must(uuid.NewV7()),
		ActorID:   actorID,
		Action:    action,
		TargetID:  targetID,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder persists audit entries.
type Recorder interface {
	// Record stores an audit entry.
	Record(ctx context.Context, entry *Entry) error
}

// Repository extends Recorder with retention maintenance.
type Repository interface {
	Recorder

	// DeleteOlderThan removes entries created before the cutoff and returns
	// the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
