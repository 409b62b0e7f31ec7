package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/capsule/service"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	appValidation "github.com/guardianchain/capsule-api/internal/validation"
)

// errMintRaceLost signals that the conditional update found the capsule
// already minted. Internal to the mint flow.
var errMintRaceLost = apperrors.New("mint race lost")

// capsuleUseCase implements CapsuleUseCase.
type capsuleUseCase struct {
	txManager   database.TxManager
	capsuleRepo CapsuleRepository
	certRepo    CertificationRepository
	mintLogRepo MintLogRepository
	minter      service.Minter
	logger      *slog.Logger
}

// NewCapsuleUseCase creates a new CapsuleUseCase.
func NewCapsuleUseCase(
	txManager database.TxManager,
	capsuleRepo CapsuleRepository,
	certRepo CertificationRepository,
	mintLogRepo MintLogRepository,
	minter service.Minter,
	logger *slog.Logger,
) CapsuleUseCase {
	return &capsuleUseCase{
		txManager:   txManager,
		capsuleRepo: capsuleRepo,
		certRepo:    certRepo,
		mintLogRepo: mintLogRepo,
		minter:      minter,
		logger:      logger,
	}
}

// validateCreateCapsuleInput validates capsule creation input.
func (u *capsuleUseCase) validateCreateCapsuleInput(input *capsuleDomain.CreateCapsuleInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 65535).Error("content must be between 1 and 65535 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create stores a new capsule authored by the acting user. Each tier carries
// a monthly creation quota; requests over the quota are rejected with
// CAPSULE_QUOTA_EXCEEDED.
func (u *capsuleUseCase) Create(
	ctx context.Context,
	actor *identityDomain.User,
	input *capsuleDomain.CreateCapsuleInput,
) (*capsuleDomain.Capsule, error) {
	if err := u.validateCreateCapsuleInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if quota := capsuleDomain.MonthlyCapsuleQuota(actor.Tier); quota != capsuleDomain.QuotaUnlimited {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		count, err := u.capsuleRepo.CountByAuthorSince(ctx, actor.ID.String(), monthStart)
		if err != nil {
			return nil, err
		}
		if count >= quota {
			u.logger.Info("capsule quota reached",
				slog.String("author", actor.ID.String()),
				slog.String("tier", actor.Tier.String()),
				slog.Int64("quota", quota),
			)
			return nil, capsuleDomain.QuotaExceededError(actor.Tier, quota)
		}
	}
	capsule := &capsuleDomain.Capsule{
		ID:        uuid.Must(uuid.NewV7()),
		Author:    actor.ID.String(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.capsuleRepo.Create(txCtx, capsule)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("capsule created",
		slog.String("capsule_id", capsule.ID.String()),
		slog.String("author", capsule.Author),
	)

	return capsule, nil
}

// Get retrieves a capsule, restricted to its owner and admin-or-above callers.
func (u *capsuleUseCase) Get(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Capsule, error) {
	capsule, err := u.capsuleRepo.Get(ctx, capsuleID)
	if err != nil {
		return nil, err
	}

	if !actor.OwnsAuthorRef(capsule.Author) && !actor.MeetsAdmin() {
		return nil, capsuleDomain.ErrCapsuleAccessDenied
	}

	return capsule, nil
}

// Mint assigns an NFT token to the caller's capsule. The token is claimed
// with a conditional update so concurrent mints of the same capsule resolve
// to exactly one winner; the loser observes ALREADY_MINTED.
func (u *capsuleUseCase) Mint(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*MintOutput, error) {
	capsule, err := u.capsuleRepo.Get(ctx, capsuleID)
	if err != nil {
		return nil, err
	}

	if !actor.OwnsAuthorRef(capsule.Author) {
		return nil, capsuleDomain.OwnershipRequiredError(capsule.ID, capsule.Author)
	}

	if capsule.IsMinted() {
		return nil, capsuleDomain.AlreadyMintedError(*capsule.NFTTokenID)
	}

	result, err := u.minter.Mint(ctx, capsuleID)
	if err != nil {
		u.recordFailedMint(ctx, capsuleID, actor.ID, err)
		return nil, capsuleDomain.MintError(capsuleID)
	}

	mintedAt := time.Now().UTC()
	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		claimed, txErr := u.capsuleRepo.SetMinted(txCtx, capsuleID, result.TokenID, result.TxHash)
		if txErr != nil {
			return txErr
		}
		if !claimed {
			return errMintRaceLost
		}
		return u.mintLogRepo.Create(txCtx, &capsuleDomain.MintLog{
			ID:        uuid.Must(uuid.NewV7()),
			CapsuleID: capsuleID,
			UserID:    actor.ID,
			Status:    capsuleDomain.MintLogStatusSuccess,
			TxHash:    &result.TxHash,
			CreatedAt: mintedAt,
		})
	})
	if err != nil {
		if apperrors.Is(err, errMintRaceLost) {
			return nil, u.alreadyMintedAfterRace(ctx, capsuleID)
		}
		u.recordFailedMint(ctx, capsuleID, actor.ID, err)
		return nil, capsuleDomain.MintError(capsuleID)
	}

	u.logger.Info("capsule minted",
		slog.String("capsule_id", capsuleID.String()),
		slog.String("nft_token_id", result.TokenID),
	)

	return &MintOutput{
		CapsuleID:  capsuleID,
		NFTTokenID: result.TokenID,
		NFTTxHash:  result.TxHash,
		MintedAt:   mintedAt,
	}, nil
}

// alreadyMintedAfterRace re-reads the capsule to report the winning token.
func (u *capsuleUseCase) alreadyMintedAfterRace(ctx context.Context, capsuleID uuid.UUID) error {
	capsule, err := u.capsuleRepo.Get(ctx, capsuleID)
	if err != nil || capsule.NFTTokenID == nil {
		return capsuleDomain.AlreadyMintedError("")
	}
	return capsuleDomain.AlreadyMintedError(*capsule.NFTTokenID)
}

// recordFailedMint appends a failed mint log outside the mint transaction so
// the record survives the rollback. Best effort.
func (u *capsuleUseCase) recordFailedMint(
	ctx context.Context,
	capsuleID, userID uuid.UUID,
	cause error,
) {
	message := cause.Error()
	logErr := u.mintLogRepo.Create(ctx, &capsuleDomain.MintLog{
		ID:           uuid.Must(uuid.NewV7()),
		CapsuleID:    capsuleID,
		UserID:       userID,
		Status:       capsuleDomain.MintLogStatusFailed,
		ErrorMessage: &message,
		CreatedAt:    time.Now().UTC(),
	})
	if logErr != nil {
		u.logger.Error("failed to record mint failure",
			slog.String("capsule_id", capsuleID.String()),
			slog.String("error", logErr.Error()),
		)
	}
}

// Status returns the capsule's mint state and active certification.
func (u *capsuleUseCase) Status(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*StatusOutput, error) {
	capsule, err := u.Get(ctx, actor, capsuleID)
	if err != nil {
		return nil, err
	}

	certification, err := u.certRepo.GetActiveByCapsule(ctx, capsuleID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		certification = nil
	}

	return &StatusOutput{
		Capsule:       capsule,
		Certification: certification,
	}, nil
}

// MintHistory lists the capsule's mint attempts, newest first.
func (u *capsuleUseCase) MintHistory(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
	limit, offset int,
) ([]*capsuleDomain.MintLog, error) {
	if _, err := u.Get(ctx, actor, capsuleID); err != nil {
		return nil, err
	}

	return u.mintLogRepo.ListByCapsule(ctx, capsuleID, limit, offset)
}
