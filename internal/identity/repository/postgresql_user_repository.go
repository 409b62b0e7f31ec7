// Package repository implements data persistence for identity entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
// Tiers and roles are stored as their canonical string names.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/guardianchain/capsule-api/internal/database"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the PostgreSQL database.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
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

// Get retrieves a User by ID from the PostgreSQL database.
func (p *PostgreSQLUserRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at
			  FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a User by email from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, username, password_hash, wallet_address, tier, role, is_active, created_at, updated_at
			  FROM users WHERE email = $1`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// UpdateTier sets a user's tier and role. Returns ErrUserNotFound if no row
// matches.
func (p *PostgreSQLUserRepository) UpdateTier(
	ctx context.Context,
	userID uuid.UUID,
	tier identityDomain.Tier,
	role identityDomain.Role,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users SET tier = $1, role = $2, updated_at = NOW() WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, tier.String(), string(role), userID)
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

// rowScanner abstracts *sql.Row for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a user row and converts the stored tier and role names.
func scanUser(row rowScanner) (*identityDomain.User, error) {
	var (
		user     identityDomain.User
		tierName string
		roleName string
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.WalletAddress,
		&tierName,
		&roleName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	tier, err := identityDomain.ParseTier(tierName)
	if err != nil {
		return nil, apperrors.Wrap(err, "stored tier is invalid")
	}
	user.Tier = tier
	user.Role = identityDomain.Role(roleName)

	return &user, nil
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
