package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
)

// RunCreateUser registers a new user account at the starting tier. Outputs the
// user ID and tier in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	username string,
	password string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	input := &identityDomain.CreateUserInput{
		Email:    email,
		Username: username,
		Password: password,
	}

	user, err := userUseCase.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUserJSON(user, writer)
	} else {
		outputUserText(user, writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", email),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *identityDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "User created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Tier: %s\n", user.Tier)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *identityDomain.User, writer io.Writer) {
	result := map[string]string{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"tier":    user.Tier.String(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
