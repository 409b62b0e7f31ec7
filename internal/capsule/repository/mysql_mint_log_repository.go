package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// MySQLMintLogRepository implements MintLog persistence for MySQL.
type MySQLMintLogRepository struct {
	db *sql.DB
}

// Create appends a mint attempt record.
func (m *MySQLMintLogRepository) Create(
	ctx context.Context,
	mintLog *capsuleDomain.MintLog,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO mint_logs (id, capsule_id, user_id, status, tx_hash, error_message, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := mintLog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal mint log id")
	}
	capsuleID, err := mintLog.CapsuleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal capsule id")
	}
	userID, err := mintLog.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		capsuleID,
		userID,
		string(mintLog.Status),
		mintLog.TxHash,
		mintLog.ErrorMessage,
		mintLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create mint log")
	}
	return nil
}

// ListByCapsule returns mint attempts for a capsule, newest first.
func (m *MySQLMintLogRepository) ListByCapsule(
	ctx context.Context,
	capsuleID uuid.UUID,
	limit, offset int,
) ([]*capsuleDomain.MintLog, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, capsule_id, user_id, status, tx_hash, error_message, created_at
			  FROM mint_logs WHERE capsule_id = ?
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	id, err := capsuleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal capsule id")
	}

	rows, err := querier.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list mint logs")
	}
	defer rows.Close()

	return collectMintLogs(rows)
}

// NewMySQLMintLogRepository creates a new MySQL MintLog repository.
func NewMySQLMintLogRepository(db *sql.DB) *MySQLMintLogRepository {
	return &MySQLMintLogRepository{db: db}
}
