package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLCapsuleRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLCapsuleRepository(db)
	capsule := newTestCapsule()

	id, err := capsule.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO capsules")).
		WithArgs(
			id, capsule.Author, capsule.Title, capsule.Content,
			capsule.CreatedAt, capsule.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), capsule))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLCapsuleRepositorySetMintedLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLCapsuleRepository(db)
	capsule := newTestCapsule()

	id, err := capsule.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = ? AND nft_token_id IS NULL")).
		WithArgs("GCHAIN-1", "0xabc", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	minted, err := repo.SetMinted(context.Background(), capsule.ID, "GCHAIN-1", "0xabc")

	assert.NoError(t, err)
	assert.False(t, minted)
}
