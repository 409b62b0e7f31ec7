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

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

func newTestSession() *identityDomain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &identityDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    uuid.Must(uuid.NewV7()),
		TokenHash: "aabbccdd",
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}
}

func TestPostgreSQLSessionRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	session := newTestSession()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WithArgs(
			session.ID, session.UserID, session.TokenHash,
			session.ExpiresAt, nil, session.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSessionRepositoryGetByTokenHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	session := newTestSession()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at",
	}).AddRow(
		session.ID, session.UserID, session.TokenHash,
		session.ExpiresAt, nil, session.CreatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE token_hash = $1")).
		WithArgs(session.TokenHash).
		WillReturnRows(rows)

	got, err := repo.GetByTokenHash(context.Background(), session.TokenHash)

	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Nil(t, got.RevokedAt)
}

func TestPostgreSQLSessionRepositoryGetByTokenHashNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE token_hash = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByTokenHash(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, identityDomain.ErrAuthRequired)
}

func TestPostgreSQLSessionRepositoryRevoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	sessionID := uuid.Must(uuid.NewV7())
	at := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET revoked_at = $1")).
		WithArgs(at, sessionID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Revoke(context.Background(), sessionID, at)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSessionRepositoryDeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLSessionRepository(db)
	before := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE expires_at < $1")).
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpired(context.Background(), before)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
