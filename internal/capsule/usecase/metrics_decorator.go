package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	"github.com/guardianchain/capsule-api/internal/metrics"
)

// capsuleUseCaseWithMetrics decorates CapsuleUseCase with metrics instrumentation.
type capsuleUseCaseWithMetrics struct {
	next    CapsuleUseCase
	metrics metrics.BusinessMetrics
}

// NewCapsuleUseCaseWithMetrics wraps a CapsuleUseCase with metrics recording.
func NewCapsuleUseCaseWithMetrics(useCase CapsuleUseCase, m metrics.BusinessMetrics) CapsuleUseCase {
	return &capsuleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record registers the outcome and duration of a capsule operation.
func (u *capsuleUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "capsule", operation, status)
	u.metrics.RecordDuration(ctx, "capsule", operation, time.Since(start), status)
}

// Create records metrics for capsule creation operations.
func (u *capsuleUseCaseWithMetrics) Create(
	ctx context.Context,
	actor *identityDomain.User,
	input *capsuleDomain.CreateCapsuleInput,
) (*capsuleDomain.Capsule, error) {
	start := time.Now()
	capsule, err := u.next.Create(ctx, actor, input)
	u.record(ctx, "create", start, err)
	return capsule, err
}

// Get records metrics for capsule retrieval operations.
func (u *capsuleUseCaseWithMetrics) Get(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Capsule, error) {
	start := time.Now()
	capsule, err := u.next.Get(ctx, actor, capsuleID)
	u.record(ctx, "get", start, err)
	return capsule, err
}

// Mint records metrics for mint operations.
func (u *capsuleUseCaseWithMetrics) Mint(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*MintOutput, error) {
	start := time.Now()
	output, err := u.next.Mint(ctx, actor, capsuleID)
	u.record(ctx, "mint", start, err)
	return output, err
}

// Status records metrics for status lookups.
func (u *capsuleUseCaseWithMetrics) Status(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*StatusOutput, error) {
	start := time.Now()
	output, err := u.next.Status(ctx, actor, capsuleID)
	u.record(ctx, "status", start, err)
	return output, err
}

// MintHistory records metrics for mint log listings.
func (u *capsuleUseCaseWithMetrics) MintHistory(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
	limit, offset int,
) ([]*capsuleDomain.MintLog, error) {
	start := time.Now()
	logs, err := u.next.MintHistory(ctx, actor, capsuleID, limit, offset)
	u.record(ctx, "mint_history", start, err)
	return logs, err
}

// certificationUseCaseWithMetrics decorates CertificationUseCase with metrics
// instrumentation.
type certificationUseCaseWithMetrics struct {
	next    CertificationUseCase
	metrics metrics.BusinessMetrics
}

// NewCertificationUseCaseWithMetrics wraps a CertificationUseCase with
// metrics recording.
func NewCertificationUseCaseWithMetrics(
	useCase CertificationUseCase,
	m metrics.BusinessMetrics,
) CertificationUseCase {
	return &certificationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Certify records metrics for certification operations.
func (u *certificationUseCaseWithMetrics) Certify(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Certification, error) {
	start := time.Now()
	certification, err := u.next.Certify(ctx, actor, capsuleID)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "certification", "certify", status)
	u.metrics.RecordDuration(ctx, "certification", "certify", time.Since(start), status)

	return certification, err
}

// Revoke records metrics for revocation operations.
func (u *certificationUseCaseWithMetrics) Revoke(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) error {
	start := time.Now()
	err := u.next.Revoke(ctx, actor, capsuleID)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "certification", "revoke", status)
	u.metrics.RecordDuration(ctx, "certification", "revoke", time.Since(start), status)

	return err
}
