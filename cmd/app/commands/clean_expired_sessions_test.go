package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	identityMocks "github.com/guardianchain/capsule-api/internal/identity/http/mocks"
)

func TestRunCleanExpiredSessions(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &identityMocks.MockSessionUseCase{}
		mockUseCase.On("DeleteExpiredSessions", ctx).Return(int64(7), nil)

		var out bytes.Buffer
		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 7 expired session(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &identityMocks.MockSessionUseCase{}
		mockUseCase.On("DeleteExpiredSessions", ctx).Return(int64(3), nil)

		var out bytes.Buffer
		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 3`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		mockUseCase := &identityMocks.MockSessionUseCase{}
		mockUseCase.On("DeleteExpiredSessions", ctx).Return(int64(0), errors.New("boom"))

		err := RunCleanExpiredSessions(ctx, mockUseCase, logger, &bytes.Buffer{}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to delete expired sessions")
	})
}
