package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianchain/capsule-api/internal/audit"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgreSQLRepositoryRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRepository(db)
	entry := audit.NewEntry(
		uuid.Must(uuid.NewV7()),
		audit.ActionTierUpdate,
		"target-user-id",
		map[string]any{"newTier": "CREATOR"},
	)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs(
			entry.ID, entry.ActorID, entry.Action, entry.TargetID,
			[]byte(`{"newTier":"CREATOR"}`), entry.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Record(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRepositoryDeleteOlderThan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRepository(db)
	cutoff := time.Now().AddDate(0, 0, -90).UTC()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM audit_logs WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
}
