package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// MySQLCapsuleRepository implements Capsule persistence for MySQL.
type MySQLCapsuleRepository struct {
	db *sql.DB
}

// Create inserts a new Capsule into the MySQL database.
func (m *MySQLCapsuleRepository) Create(
	ctx context.Context,
	capsule *capsuleDomain.Capsule,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO capsules (id, author, title, content, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := capsule.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal capsule id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		capsule.Author,
		capsule.Title,
		capsule.Content,
		capsule.CreatedAt,
		capsule.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create capsule")
	}
	return nil
}

// CountByAuthorSince counts the author's capsules created at or after the
// given time.
func (m *MySQLCapsuleRepository) CountByAuthorSince(
	ctx context.Context,
	author string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM capsules WHERE author = ? AND created_at >= ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, author, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count capsules by author")
	}
	return count, nil
}

// Get retrieves a Capsule by ID from the MySQL database.
func (m *MySQLCapsuleRepository) Get(
	ctx context.Context,
	capsuleID uuid.UUID,
) (*capsuleDomain.Capsule, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, author, title, content, nft_token_id, nft_tx_hash, minted_at, created_at, updated_at
			  FROM capsules WHERE id = ?`

	id, err := capsuleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal capsule id")
	}

	return scanCapsule(querier.QueryRowContext(ctx, query, id))
}

// SetMinted assigns the NFT token to the capsule if it has none yet. Returns
// false when another mint already claimed the row.
func (m *MySQLCapsuleRepository) SetMinted(
	ctx context.Context,
	capsuleID uuid.UUID,
	tokenID, txHash string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE capsules
			  SET nft_token_id = ?, nft_tx_hash = ?, minted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND nft_token_id IS NULL`

	id, err := capsuleID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal capsule id")
	}

	result, err := querier.ExecContext(ctx, query, tokenID, txHash, id)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to mint capsule")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}
	return rowsAffected == 1, nil
}

// NewMySQLCapsuleRepository creates a new MySQL Capsule repository.
func NewMySQLCapsuleRepository(db *sql.DB) *MySQLCapsuleRepository {
	return &MySQLCapsuleRepository{db: db}
}
