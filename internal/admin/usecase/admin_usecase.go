package usecase

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
	"github.com/guardianchain/capsule-api/internal/audit"
	"github.com/guardianchain/capsule-api/internal/database"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
)

// adminUseCase implements AdminUseCase.
type adminUseCase struct {
	txManager     database.TxManager
	userRepo      identityUseCase.UserRepository
	statsRepo     StatsRepository
	auditRecorder audit.Recorder
	db            *sql.DB
	limiterStore  string
	startedAt     time.Time
	logger        *slog.Logger
}

// NewAdminUseCase creates a new AdminUseCase. limiterStore names the rate
// limit backend reported by the health check.
func NewAdminUseCase(
	txManager database.TxManager,
	userRepo identityUseCase.UserRepository,
	statsRepo StatsRepository,
	auditRecorder audit.Recorder,
	db *sql.DB,
	limiterStore string,
	logger *slog.Logger,
) AdminUseCase {
	return &adminUseCase{
		txManager:     txManager,
		userRepo:      userRepo,
		statsRepo:     statsRepo,
		auditRecorder: auditRecorder,
		db:            db,
		limiterStore:  limiterStore,
		startedAt:     time.Now().UTC(),
		logger:        logger,
	}
}

// UpdateTier changes a user's membership tier. The tier and the audit entry
// are written in one transaction.
func (u *adminUseCase) UpdateTier(
	ctx context.Context,
	actor *identityDomain.User,
	targetID uuid.UUID,
	tierName string,
) (*identityDomain.User, error) {
	tier, err := identityDomain.ParseTier(tierName)
	if err != nil {
		return nil, identityDomain.InvalidTierError(tierName)
	}

	target, err := u.userRepo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if tier == identityDomain.TierAdmin && !actor.IsSovereign() {
		return nil, identityDomain.SovereignRequiredError(actor.Tier)
	}

	role := target.Role
	if tier == identityDomain.TierAdmin {
		role = identityDomain.RoleAdmin
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if txErr := u.userRepo.UpdateTier(txCtx, targetID, tier, role); txErr != nil {
			return txErr
		}
		return u.auditRecorder.Record(txCtx, audit.NewEntry(
			actor.ID,
			audit.ActionTierUpdate,
			targetID.String(),
			map[string]any{
				"previousTier": target.Tier.String(),
				"newTier":      tier.String(),
			},
		))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("user tier updated",
		slog.String("actor_id", actor.ID.String()),
		slog.String("target_id", targetID.String()),
		slog.String("tier", tier.String()),
	)

	target.Tier = tier
	target.Role = role
	return target, nil
}

// Stats returns aggregate platform counts.
func (u *adminUseCase) Stats(ctx context.Context) (*adminDomain.Stats, error) {
	stats, err := u.statsRepo.Collect(ctx)
	if err != nil {
		u.logger.Error("stats collection failed", slog.String("error", err.Error()))
		return nil, adminDomain.ErrStats
	}
	return stats, nil
}

// Health pings the database and reports dependency state.
func (u *adminUseCase) Health(ctx context.Context) (*adminDomain.HealthReport, error) {
	latency, err := database.CheckHealth(ctx, u.db)
	if err != nil {
		u.logger.Error("health check failed", slog.String("error", err.Error()))
		return nil, adminDomain.ErrHealthCheck
	}

	return &adminDomain.HealthReport{
		DatabaseHealthy: true,
		DatabaseLatency: latency,
		LimiterStore:    u.limiterStore,
		Uptime:          time.Since(u.startedAt),
	}, nil
}
