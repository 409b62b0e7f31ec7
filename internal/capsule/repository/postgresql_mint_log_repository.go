package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// PostgreSQLMintLogRepository implements MintLog persistence for PostgreSQL.
type PostgreSQLMintLogRepository struct {
	db *sql.DB
}

// Create appends a mint attempt record.
func (p *PostgreSQLMintLogRepository) Create(
	ctx context.Context,
	mintLog *capsuleDomain.MintLog,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO mint_logs (id, capsule_id, user_id, status, tx_hash, error_message, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		mintLog.ID,
		mintLog.CapsuleID,
		mintLog.UserID,
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
func (p *PostgreSQLMintLogRepository) ListByCapsule(
	ctx context.Context,
	capsuleID uuid.UUID,
	limit, offset int,
) ([]*capsuleDomain.MintLog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, capsule_id, user_id, status, tx_hash, error_message, created_at
			  FROM mint_logs WHERE capsule_id = $1
			  ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, capsuleID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list mint logs")
	}
	defer rows.Close()

	return collectMintLogs(rows)
}

// collectMintLogs scans all mint log rows.
func collectMintLogs(rows *sql.Rows) ([]*capsuleDomain.MintLog, error) {
	var mintLogs []*capsuleDomain.MintLog

	for rows.Next() {
		var (
			mintLog capsuleDomain.MintLog
			status  string
		)
		err := rows.Scan(
			&mintLog.ID,
			&mintLog.CapsuleID,
			&mintLog.UserID,
			&status,
			&mintLog.TxHash,
			&mintLog.ErrorMessage,
			&mintLog.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan mint log")
		}
		mintLog.Status = capsuleDomain.MintLogStatus(status)
		mintLogs = append(mintLogs, &mintLog)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate mint logs")
	}

	return mintLogs, nil
}

// NewPostgreSQLMintLogRepository creates a new PostgreSQL MintLog repository.
func NewPostgreSQLMintLogRepository(db *sql.DB) *PostgreSQLMintLogRepository {
	return &PostgreSQLMintLogRepository{db: db}
}
