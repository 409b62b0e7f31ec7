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

// PostgreSQLCertificationRepository implements Certification persistence for
// PostgreSQL.
type PostgreSQLCertificationRepository struct {
	db *sql.DB
}

// Create inserts a new Certification into the PostgreSQL database.
func (p *PostgreSQLCertificationRepository) Create(
	ctx context.Context,
	certification *capsuleDomain.Certification,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO certifications
			  (id, capsule_id, certifier_id, status, votes_for, votes_against, certified_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		certification.ID,
		certification.CapsuleID,
		certification.CertifierID,
		string(certification.Status),
		certification.VotesFor,
		certification.VotesAgainst,
		certification.CertifiedAt,
		certification.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create certification")
	}
	return nil
}

// GetActiveByCapsule retrieves the approved, unrevoked, unexpired
// certification for a capsule. Returns ErrNotFound when none exists.
func (p *PostgreSQLCertificationRepository) GetActiveByCapsule(
	ctx context.Context,
	capsuleID uuid.UUID,
) (*capsuleDomain.Certification, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, capsule_id, certifier_id, status, votes_for, votes_against,
			  certified_at, expires_at, revoked_at
			  FROM certifications
			  WHERE capsule_id = $1 AND status = $2 AND revoked_at IS NULL AND expires_at > NOW()`

	return scanCertification(querier.QueryRowContext(
		ctx,
		query,
		capsuleID,
		string(capsuleDomain.CertificationStatusApproved),
	))
}

// Revoke flips the certification status to revoked and stamps the time. The
// row is never deleted.
func (p *PostgreSQLCertificationRepository) Revoke(
	ctx context.Context,
	certificationID uuid.UUID,
	at time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE certifications SET status = $1, revoked_at = $2
			  WHERE id = $3 AND revoked_at IS NULL`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(capsuleDomain.CertificationStatusRevoked),
		at,
		certificationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke certification")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rowsAffected == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound, "certification not found or already revoked")
	}
	return nil
}

// scanCertification scans a certification row.
func scanCertification(row rowScanner) (*capsuleDomain.Certification, error) {
	var (
		certification capsuleDomain.Certification
		status        string
	)

	err := row.Scan(
		&certification.ID,
		&certification.CapsuleID,
		&certification.CertifierID,
		&status,
		&certification.VotesFor,
		&certification.VotesAgainst,
		&certification.CertifiedAt,
		&certification.ExpiresAt,
		&certification.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "certification not found")
		}
		return nil, apperrors.Wrap(err, "failed to get certification")
	}

	certification.Status = capsuleDomain.CertificationStatus(status)
	return &certification, nil
}

// NewPostgreSQLCertificationRepository creates a new PostgreSQL Certification repository.
func NewPostgreSQLCertificationRepository(db *sql.DB) *PostgreSQLCertificationRepository {
	return &PostgreSQLCertificationRepository{db: db}
}
