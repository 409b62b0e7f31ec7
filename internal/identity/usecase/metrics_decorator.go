package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	"github.com/guardianchain/capsule-api/internal/metrics"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for user registration operations.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "identity", "register", status)
	u.metrics.RecordDuration(ctx, "identity", "register", time.Since(start), status)

	return user, err
}

// Get records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "identity", "user_get", status)
	u.metrics.RecordDuration(ctx, "identity", "user_get", time.Since(start), status)

	return user, err
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	email, password string,
) (*LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "identity", "login", status)
	s.metrics.RecordDuration(ctx, "identity", "login", time.Since(start), status)

	return output, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := s.next.Logout(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "identity", "logout", status)
	s.metrics.RecordDuration(ctx, "identity", "logout", time.Since(start), status)

	return err
}

// Authenticate records metrics for authentication operations.
func (s *sessionUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	plainToken string,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := s.next.Authenticate(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "identity", "authenticate", status)
	s.metrics.RecordDuration(ctx, "identity", "authenticate", time.Since(start), status)

	return user, err
}

// DeleteExpiredSessions records metrics for session cleanup operations.
func (s *sessionUseCaseWithMetrics) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	start := time.Now()
	removed, err := s.next.DeleteExpiredSessions(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "identity", "session_cleanup", status)
	s.metrics.RecordDuration(ctx, "identity", "session_cleanup", time.Since(start), status)

	return removed, err
}
