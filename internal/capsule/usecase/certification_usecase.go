package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guardianchain/capsule-api/internal/audit"
	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// certificationUseCase implements CertificationUseCase.
type certificationUseCase struct {
	txManager             database.TxManager
	capsuleRepo           CapsuleRepository
	certRepo              CertificationRepository
	auditRecorder         audit.Recorder
	certificationValidity time.Duration
	logger                *slog.Logger
}

// NewCertificationUseCase creates a new CertificationUseCase.
func NewCertificationUseCase(
	txManager database.TxManager,
	capsuleRepo CapsuleRepository,
	certRepo CertificationRepository,
	auditRecorder audit.Recorder,
	certificationValidity time.Duration,
	logger *slog.Logger,
) CertificationUseCase {
	return &certificationUseCase{
		txManager:             txManager,
		capsuleRepo:           capsuleRepo,
		certRepo:              certRepo,
		auditRecorder:         auditRecorder,
		certificationValidity: certificationValidity,
		logger:                logger,
	}
}

// Certify records an approved certification for a capsule. The active-record
// check and the insert run in one transaction so a capsule never holds two
// active certifications.
func (u *certificationUseCase) Certify(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Certification, error) {
	if _, err := u.capsuleRepo.Get(ctx, capsuleID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	certification := &capsuleDomain.Certification{
		ID:          uuid.Must(uuid.NewV7()),
		CapsuleID:   capsuleID,
		CertifierID: actor.ID,
		Status:      capsuleDomain.CertificationStatusApproved,
		CertifiedAt: now,
		ExpiresAt:   now.Add(u.certificationValidity),
	}

	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, txErr := u.certRepo.GetActiveByCapsule(txCtx, capsuleID)
		if txErr == nil {
			return capsuleDomain.AlreadyCertifiedError(existing.CertifiedAt)
		}
		if !apperrors.Is(txErr, apperrors.ErrNotFound) {
			return txErr
		}

		if txErr := u.certRepo.Create(txCtx, certification); txErr != nil {
			return txErr
		}
		return u.auditRecorder.Record(txCtx, audit.NewEntry(
			actor.ID,
			audit.ActionCertifyCapsule,
			capsuleID.String(),
			map[string]any{"certificationId": certification.ID.String()},
		))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("capsule certified",
		slog.String("capsule_id", capsuleID.String()),
		slog.String("certifier_id", actor.ID.String()),
	)

	return certification, nil
}

// Revoke marks the capsule's active certification as revoked. History is
// kept: the row is updated, never deleted.
func (u *certificationUseCase) Revoke(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) error {
	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		certification, txErr := u.certRepo.GetActiveByCapsule(txCtx, capsuleID)
		if txErr != nil {
			if apperrors.Is(txErr, apperrors.ErrNotFound) {
				return capsuleDomain.ErrCapsuleNotFound
			}
			return txErr
		}

		if txErr := u.certRepo.Revoke(txCtx, certification.ID, time.Now().UTC()); txErr != nil {
			return txErr
		}
		return u.auditRecorder.Record(txCtx, audit.NewEntry(
			actor.ID,
			audit.ActionRevokeCertification,
			capsuleID.String(),
			map[string]any{"certificationId": certification.ID.String()},
		))
	})
	if err != nil {
		return err
	}

	u.logger.Info("certification revoked",
		slog.String("capsule_id", capsuleID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	return nil
}
