// Package repository implements data persistence for capsule entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Minting uses a conditional single-row update so a capsule
// can be minted at most once even under concurrent requests.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// PostgreSQLCapsuleRepository implements Capsule persistence for PostgreSQL.
type PostgreSQLCapsuleRepository struct {
	db *sql.DB
}

// Create inserts a new Capsule into the PostgreSQL database.
func (p *PostgreSQLCapsuleRepository) Create(
	ctx context.Context,
	capsule *capsuleDomain.Capsule,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO capsules (id, author, title, content, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		capsule.ID,
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
func (p *PostgreSQLCapsuleRepository) CountByAuthorSince(
	ctx context.Context,
	author string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM capsules WHERE author = $1 AND created_at >= $2`

	var count int64
	if err := querier.QueryRowContext(ctx, query, author, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count capsules by author")
	}
	return count, nil
}

// Get retrieves a Capsule by ID from the PostgreSQL database.
func (p *PostgreSQLCapsuleRepository) Get(
	ctx context.Context,
	capsuleID uuid.UUID,
) (*capsuleDomain.Capsule, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, author, title, content, nft_token_id, nft_tx_hash, minted_at, created_at, updated_at
			  FROM capsules WHERE id = $1`

	return scanCapsule(querier.QueryRowContext(ctx, query, capsuleID))
}

// SetMinted assigns the NFT token to the capsule if it has none yet. Returns
// false when another mint already claimed the row.
func (p *PostgreSQLCapsuleRepository) SetMinted(
	ctx context.Context,
	capsuleID uuid.UUID,
	tokenID, txHash string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE capsules
			  SET nft_token_id = $1, nft_tx_hash = $2, minted_at = NOW(), updated_at = NOW()
			  WHERE id = $3 AND nft_token_id IS NULL`

	result, err := querier.ExecContext(ctx, query, tokenID, txHash, capsuleID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to mint capsule")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}
	return rowsAffected == 1, nil
}

// scanCapsule scans a capsule row.
func scanCapsule(row rowScanner) (*capsuleDomain.Capsule, error) {
	var capsule capsuleDomain.Capsule

	err := row.Scan(
		&capsule.ID,
		&capsule.Author,
		&capsule.Title,
		&capsule.Content,
		&capsule.NFTTokenID,
		&capsule.NFTTxHash,
		&capsule.MintedAt,
		&capsule.CreatedAt,
		&capsule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, capsuleDomain.ErrCapsuleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capsule")
	}

	return &capsule, nil
}

// rowScanner abstracts *sql.Row for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// NewPostgreSQLCapsuleRepository creates a new PostgreSQL Capsule repository.
func NewPostgreSQLCapsuleRepository(db *sql.DB) *PostgreSQLCapsuleRepository {
	return &PostgreSQLCapsuleRepository{db: db}
}
