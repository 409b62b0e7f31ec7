package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	"github.com/guardianchain/capsule-api/internal/identity/service"
)

// sessionUseCase implements SessionUseCase with opaque DB-backed tokens.
type sessionUseCase struct {
	userRepo          UserRepository
	sessionRepo       SessionRepository
	passwordService   service.PasswordService
	tokenService      service.SessionTokenService
	sessionExpiration time.Duration
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	passwordService service.PasswordService,
	tokenService service.SessionTokenService,
	sessionExpiration time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		userRepo:          userRepo,
		sessionRepo:       sessionRepo,
		passwordService:   passwordService,
		tokenService:      tokenService,
		sessionExpiration: sessionExpiration,
	}
}

// Login verifies credentials and opens a new session. Unknown emails and bad
// passwords both map to ErrInvalidCredentials so the response does not reveal
// which one failed.
func (s *sessionUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, identityDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, identityDomain.ErrInvalidCredentials
	}

	// Deactivated accounts look like bad credentials to the caller.
	if !user.IsActive {
		return nil, identityDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &identityDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.sessionExpiration),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginOutput{
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

// Logout revokes the session identified by the plain token.
func (s *sessionUseCase) Logout(ctx context.Context, plainToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, s.tokenService.HashToken(plainToken))
	if err != nil {
		return err
	}
	return s.sessionRepo.Revoke(ctx, session.ID, time.Now().UTC())
}

// Authenticate resolves a plain token to its active user. The user row is
// read on every call, so tier updates and deactivation take effect on the
// next request.
func (s *sessionUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*identityDomain.User, error) {
	if plainToken == "" {
		return nil, identityDomain.ErrAuthRequired
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, s.tokenService.HashToken(plainToken))
	if err != nil {
		return nil, err
	}

	if !session.IsActive(time.Now().UTC()) {
		return nil, identityDomain.ErrAuthRequired
	}

	user, err := s.userRepo.Get(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, identityDomain.ErrAuthRequired
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, identityDomain.ErrAuthRequired
	}

	return user, nil
}

// DeleteExpiredSessions removes stale session rows.
func (s *sessionUseCase) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
}
