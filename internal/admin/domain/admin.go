// Package domain contains the core types for administrative operations.
package domain

import (
	"time"

	"github.com/guardianchain/capsule-api/internal/errors"
)

// Administrative errors with stable machine-readable codes. Failure detail
// goes to the server log, not the response body.
var (
	ErrStats       = errors.NewCoded(errors.ErrInternal, "ADMIN_STATS_ERROR", "Failed to collect platform stats")
	ErrHealthCheck = errors.NewCoded(errors.ErrInternal, "HEALTH_CHECK_ERROR", "System health check failed")
)

// Stats aggregates platform counts for the admin dashboard.
type Stats struct {
	TotalUsers           int64            `json:"total_users"`
	UsersByTier          map[string]int64 `json:"users_by_tier"`
	TotalCapsules        int64            `json:"total_capsules"`
	MintedCapsules       int64            `json:"minted_capsules"`
	ActiveCertifications int64            `json:"active_certifications"`
}

// HealthReport describes the state of the system's dependencies.
type HealthReport struct {
	DatabaseHealthy bool          `json:"database_healthy"`
	DatabaseLatency time.Duration `json:"database_latency"`
	LimiterStore    string        `json:"limiter_store"`
	Uptime          time.Duration `json:"uptime"`
}
