// Package usecase defines business logic interfaces for admin operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// StatsRepository collects platform aggregates.
type StatsRepository interface {
	// Collect gathers user, capsule and certification counts.
	Collect(ctx context.Context) (*adminDomain.Stats, error)
}

// AdminUseCase defines business logic operations for platform administration.
type AdminUseCase interface {
	// UpdateTier changes a user's membership tier. Assigning the ADMIN tier
	// requires a sovereign actor and also grants the admin role.
	UpdateTier(
		ctx context.Context,
		actor *identityDomain.User,
		targetID uuid.UUID,
		tierName string,
	) (*identityDomain.User, error)

	// Stats returns aggregate platform counts.
	Stats(ctx context.Context) (*adminDomain.Stats, error)

	// Health reports the state of the system's dependencies.
	Health(ctx context.Context) (*adminDomain.HealthReport, error)
}
