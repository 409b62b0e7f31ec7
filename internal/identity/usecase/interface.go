// Package usecase defines business logic interfaces for identity operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user in the repository.
	Create(ctx context.Context, user *identityDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*identityDomain.User, error)

	// UpdateTier sets a user's tier and role. Returns ErrUserNotFound if not found.
	UpdateTier(ctx context.Context, userID uuid.UUID, tier identityDomain.Tier, role identityDomain.Role) error
}

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	// Create stores a new session in the repository.
	Create(ctx context.Context, session *identityDomain.Session) error

	// GetByTokenHash retrieves a session by its token hash.
	// Returns ErrAuthRequired if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*identityDomain.Session, error)

	// Revoke marks a session as revoked at the given time.
	Revoke(ctx context.Context, sessionID uuid.UUID, at time.Time) error

	// DeleteExpired removes sessions that expired before the given time and
	// returns the number removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// LoginOutput carries the result of a successful login. Token is the plain
// session token, returned only once.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *identityDomain.User
}

// UserUseCase defines business logic operations for user accounts.
type UserUseCase interface {
	// Register creates a new user at the EXPLORER tier. Returns ErrEmailTaken
	// if the email is already registered.
	Register(ctx context.Context, input *identityDomain.CreateUserInput) (*identityDomain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)
}

// SessionUseCase defines business logic operations for login sessions.
type SessionUseCase interface {
	// Login verifies credentials and opens a new session.
	// Returns ErrInvalidCredentials on any credential failure.
	Login(ctx context.Context, email, password string) (*LoginOutput, error)

	// Logout revokes the session identified by the plain token.
	Logout(ctx context.Context, plainToken string) error

	// Authenticate resolves a plain token to the user holding the session.
	// Returns ErrAuthRequired when the token is missing, unknown, expired, or
	// revoked. The user is read fresh so tier changes apply immediately.
	Authenticate(ctx context.Context, plainToken string) (*identityDomain.User, error)

	// DeleteExpiredSessions removes stale session rows and returns the count.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
