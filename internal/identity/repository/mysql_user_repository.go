package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the MySQL database.
func (m *MySQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.WalletAddress,
		user.Tier.String(),
		string(user.Role),
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID from the MySQL database.
func (m *MySQLUserRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at
			  FROM users WHERE id = ?`

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	return scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a User by email from the MySQL database.
func (m *MySQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at
			  FROM users WHERE email = ?`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// UpdateTier sets a user's tier and role. Returns ErrUserNotFound if no row
// matches.
func (m *MySQLUserRepository) UpdateTier(
	ctx context.Context,
	userID uuid.UUID,
	tier identityDomain.Tier,
	role identityDomain.Role,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE users SET tier = ?, role = ?, updated_at = NOW() WHERE id = ?`

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, tier.String(), string(role), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user tier")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}
	return nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
