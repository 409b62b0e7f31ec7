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

// MySQLCertificationRepository implements Certification persistence for MySQL.
type MySQLCertificationRepository struct {
	db *sql.DB
}

// Create inserts a new Certification into the MySQL database.
func (m *MySQLCertificationRepository) Create(
	ctx context.Context,
	certification *capsuleDomain.Certification,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO certifications
			  (id, capsule_id, certifier_id, status, votes_for, votes_against, certified_at, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := certification.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal certification id")
	}
	capsuleID, err := certification.CapsuleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal capsule id")
	}
	certifierID, err := certification.CertifierID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal certifier id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		capsuleID,
		certifierID,
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
func (m *MySQLCertificationRepository) GetActiveByCapsule(
	ctx context.Context,
	capsuleID uuid.UUID,
) (*capsuleDomain.Certification, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, capsule_id, certifier_id, status, votes_for, votes_against,
			  certified_at, expires_at, revoked_at
			  FROM certifications
			  WHERE capsule_id = ? AND status = ? AND revoked_at IS NULL AND expires_at > NOW()`

	id, err := capsuleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal capsule id")
	}

	return scanCertification(querier.QueryRowContext(
		ctx,
		query,
		id,
		string(capsuleDomain.CertificationStatusApproved),
	))
}

// Revoke flips the certification status to revoked and stamps the time. The
// row is never deleted.
func (m *MySQLCertificationRepository) Revoke(
	ctx context.Context,
	certificationID uuid.UUID,
	at time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE certifications SET status = ?, revoked_at = ?
			  WHERE id = ? AND revoked_at IS NULL`

	id, err := certificationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal certification id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		string(capsuleDomain.CertificationStatusRevoked),
		at,
		id,
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

// NewMySQLCertificationRepository creates a new MySQL Certification repository.
func NewMySQLCertificationRepository(db *sql.DB) *MySQLCertificationRepository {
	return &MySQLCertificationRepository{db: db}
}
