package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
)

// RunCleanExpiredSessions deletes login sessions that have already expired.
// Outputs the deletion count in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredSessions(
	ctx context.Context,
	sessionUseCase identityUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("cleaning expired sessions")

	count, err := sessionUseCase.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputSessionsJSON(count, writer)
	} else {
		outputSessionsText(count, writer)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))

	return nil
}

// outputSessionsText outputs the result in human-readable text format.
func outputSessionsText(count int64, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired session(s)\n", count)
}

// outputSessionsJSON outputs the result in JSON format for machine consumption.
func outputSessionsJSON(count int64, writer io.Writer) {
	result := map[string]interface{}{
		"count": count,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
