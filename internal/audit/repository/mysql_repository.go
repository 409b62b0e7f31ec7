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

// MySQLRepository implements audit log persistence for MySQL.
type MySQLRepository struct {
	db *sql.DB
}

// Record stores an audit entry. Metadata is serialized to JSON.
func (m *MySQLRepository) Record(ctx context.Context, entry *audit.Entry) error {
	querier := database.GetTx(ctx, m.db)

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit metadata")
	}

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit entry id")
	}
	actorID, err := entry.ActorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal actor id")
	}

	query := `INSERT INTO audit_logs (id, actor_id, action, target_id, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		actorID,
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
func (m *MySQLRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM audit_logs WHERE created_at < ?`,
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

// NewMySQLRepository creates a new MySQL audit log repository.
func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}
