// Package repository implements aggregate queries for admin operations.
//
// The stats queries take no bind parameters, so a single implementation
// serves both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// SQLStatsRepository collects platform aggregates with plain SQL.
type SQLStatsRepository struct {
	db *sql.DB
}

// Collect gathers user, capsule and certification counts.
func (s *SQLStatsRepository) Collect(ctx context.Context) (*adminDomain.Stats, error) {
	querier := database.GetTx(ctx, s.db)

	stats := &adminDomain.Stats{
		UsersByTier: make(map[string]int64),
	}

	rows, err := querier.QueryContext(ctx, `SELECT tier, COUNT(*) FROM users GROUP BY tier`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count users by tier")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tier  string
			count int64
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tier count")
		}
		stats.UsersByTier[tier] = count
		stats.TotalUsers += count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tier counts")
	}

	err = querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COUNT(nft_token_id) FROM capsules`,
	).Scan(&stats.TotalCapsules, &stats.MintedCapsules)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count capsules")
	}

	err = querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM certifications
		 WHERE status = 'approved' AND revoked_at IS NULL AND expires_at > NOW()`,
	).Scan(&stats.ActiveCertifications)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count certifications")
	}

	return stats, nil
}

// NewSQLStatsRepository creates a new stats repository.
func NewSQLStatsRepository(db *sql.DB) *SQLStatsRepository {
	return &SQLStatsRepository{db: db}
}
