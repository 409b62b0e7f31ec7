package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guardianchain/capsule-api/internal/audit"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Record(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunCleanAuditLogs(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	days := 30

	t.Run("text-output", func(t *testing.T) {
		repo := &mockAuditRepository{}
		repo.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time")).Return(int64(100), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, repo, logger, &out, days, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 100 audit log(s)")
		repo.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		repo := &mockAuditRepository{}
		repo.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time")).Return(int64(50), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, repo, logger, &out, days, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 50`)
		repo.AssertExpectations(t)
	})

	t.Run("invalid-days", func(t *testing.T) {
		repo := &mockAuditRepository{}
		err := RunCleanAuditLogs(ctx, repo, logger, &bytes.Buffer{}, -1, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
	})
}
