package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	"github.com/guardianchain/capsule-api/internal/metrics"
)

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record registers the outcome and duration of an admin operation.
func (u *adminUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "admin", operation, status)
	u.metrics.RecordDuration(ctx, "admin", operation, time.Since(start), status)
}

// UpdateTier records metrics for tier update operations.
func (u *adminUseCaseWithMetrics) UpdateTier(
	ctx context.Context,
	actor *identityDomain.User,
	targetID uuid.UUID,
	tierName string,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateTier(ctx, actor, targetID, tierName)
	u.record(ctx, "tier_update", start, err)
	return user, err
}

// Stats records metrics for stats collection.
func (u *adminUseCaseWithMetrics) Stats(ctx context.Context) (*adminDomain.Stats, error) {
	start := time.Now()
	stats, err := u.next.Stats(ctx)
	u.record(ctx, "stats", start, err)
	return stats, err
}

// Health records metrics for health checks.
func (u *adminUseCaseWithMetrics) Health(ctx context.Context) (*adminDomain.HealthReport, error) {
	start := time.Now()
	report, err := u.next.Health(ctx)
	u.record(ctx, "health", start, err)
	return report, err
}
