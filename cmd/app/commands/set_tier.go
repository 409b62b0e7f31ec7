package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
)

// RunSetTier sets a user's membership tier directly. Unlike the HTTP admin
// endpoint this bypasses the sovereign check, so it can bootstrap the first
// admin account on a fresh database. Assigning the ADMIN tier also grants the
// admin role.
//
// Requirements: Database must be migrated and accessible.
func RunSetTier(
	ctx context.Context,
	userRepo identityUseCase.UserRepository,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	tierName string,
	format string,
) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %s", userID)
	}

	tier, err := identityDomain.ParseTier(tierName)
	if err != nil {
		return fmt.Errorf("invalid tier: %s (valid options: %s)", tierName, strings.Join(identityDomain.TierNames(), ", "))
	}

	user, err := userRepo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	role := user.Role
	if tier == identityDomain.TierAdmin {
		role = identityDomain.RoleAdmin
	}

	logger.Info("setting user tier",
		slog.String("user_id", id.String()),
		slog.String("previous_tier", user.Tier.String()),
		slog.String("tier", tier.String()),
	)

	if err := userRepo.UpdateTier(ctx, id, tier, role); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputTierJSON(id, user.Tier, tier, writer)
	} else {
		outputTierText(id, user.Tier, tier, writer)
	}

	return nil
}

// outputTierText outputs the result in human-readable text format.
func outputTierText(userID uuid.UUID, previous, current identityDomain.Tier, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "Tier updated successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", userID.String())
	_, _ = fmt.Fprintf(writer, "Tier: %s -> %s\n", previous, current)
}

// outputTierJSON outputs the result in JSON format for machine consumption.
func outputTierJSON(userID uuid.UUID, previous, current identityDomain.Tier, writer io.Writer) {
	result := map[string]string{
		"user_id":       userID.String(),
		"previous_tier": previous.String(),
		"tier":          current.String(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
