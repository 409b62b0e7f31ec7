// Package repository implements audit log persistence.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/guardianchain/capsule-api/internal/audit"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// PostgreSQLRepository implements audit log persistence for PostgreSQL.
type PostgreSQLRepository struct {
	db *sql.DB
}

// Record stores an audit entry. Metadata is serialized to JSON.
func (p *PostgreSQLRepository) Record(ctx context.Context, entry *audit.Entry) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit metadata")
	}

	query := `INSERT INTO audit_logs (id, actor_id, action, target_id, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.TargetID,
		metadata,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to record audit entry")
	}
	return nil
}

// DeleteOlderThan removes entries created before the cutoff.
func (p *PostgreSQLRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM audit_logs WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit entries")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return deleted, nil
}

// NewPostgreSQLRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLRepository(db *sql.DB) *PostgreSQLRepository {
	return &PostgreSQLRepository{db: db}
}
