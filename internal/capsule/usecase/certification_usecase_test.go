package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guardianchain/capsule-api/internal/audit"
	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	databaseMocks "github.com/guardianchain/capsule-api/internal/database/mocks"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// mockAuditRecorder is a mock implementation of audit.Recorder for testing.
type mockAuditRecorder struct {
	mock.Mock
}

func (m *mockAuditRecorder) Record(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type certificationTestDeps struct {
	capsuleRepo   *mockCapsuleRepository
	certRepo      *mockCertificationRepository
	auditRecorder *mockAuditRecorder
	useCase       CertificationUseCase
}

func newCertificationUseCaseForTest(t *testing.T) certificationTestDeps {
	t.Helper()
	deps := certificationTestDeps{
		capsuleRepo:   &mockCapsuleRepository{},
		certRepo:      &mockCertificationRepository{},
		auditRecorder: &mockAuditRecorder{},
	}
	deps.useCase = NewCertificationUseCase(
		databaseMocks.NewMockTxManager(t),
		deps.capsuleRepo,
		deps.certRepo,
		deps.auditRecorder,
		365*24*time.Hour,
		newTestLogger(),
	)
	return deps
}

func newAdmin() *identityDomain.User {
	return &identityDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "admin@example.com",
		Tier:  identityDomain.TierSovereign,
		Role:  identityDomain.RoleAdmin,
	}
}

func TestCertificationUseCaseCertify(t *testing.T) {
	notFound := apperrors.Wrap(apperrors.ErrNotFound, "certification not found")

	t.Run("Success", func(t *testing.T) {
		deps := newCertificationUseCaseForTest(t)
		admin := newAdmin()
		capsule := ownedCapsule(newOwner())

		deps.capsuleRepo.On("Get", mock.Anything, capsule.ID).Return(capsule, nil)
		deps.certRepo.On("GetActiveByCapsule", mock.Anything, capsule.ID).Return(nil, notFound)
		deps.certRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *capsuleDomain.Certification) bool {
			return c.CapsuleID == capsule.ID &&
				c.CertifierID == admin.ID &&
				c.Status == capsuleDomain.CertificationStatusApproved
		})).Return(nil)
		deps.auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action == audit.ActionCertifyCapsule && e.ActorID == admin.ID
		})).Return(nil)

		certification, err := deps.useCase.Certify(context.Background(), admin, capsule.ID)

		require.NoError(t, err)
		assert.WithinDuration(t,
			certification.CertifiedAt.AddDate(1, 0, 0),
			certification.ExpiresAt,
			24*time.Hour,
		)
		deps.auditRecorder.AssertExpectations(t)
	})

	t.Run("Error_CapsuleNotFound", func(t *testing.T) {
		deps := newCertificationUseCaseForTest(t)
		capsuleID := uuid.Must(uuid.NewV7())
		deps.capsuleRepo.On("Get", mock.Anything, capsuleID).
			Return(nil, capsuleDomain.ErrCapsuleNotFound)

		certification, err := deps.useCase.Certify(context.Background(), newAdmin(), capsuleID)

		assert.Nil(t, certification)
		assert.ErrorIs(t, err, capsuleDomain.ErrCapsuleNotFound)
	})

	t.Run("Error_AlreadyCertified", func(t *testing.T) {
		deps := newCertificationUseCaseForTest(t)
		capsule := ownedCapsule(newOwner())
		certifiedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		existing := &capsuleDomain.Certification{
			ID:          uuid.Must(uuid.NewV7()),
			CapsuleID:   capsule.ID,
			Status:      capsuleDomain.CertificationStatusApproved,
			CertifiedAt: certifiedAt,
		}

		deps.capsuleRepo.On("Get", mock.Anything, capsule.ID).Return(capsule, nil)
		deps.certRepo.On("GetActiveByCapsule", mock.Anything, capsule.ID).Return(existing, nil)

		certification, err := deps.useCase.Certify(context.Background(), newAdmin(), capsule.ID)

		assert.Nil(t, certification)
		coded, ok := apperrors.AsCoded(err)
		require.True(t, ok)
		assert.Equal(t, "ALREADY_CERTIFIED", coded.Code)
		assert.Equal(t, "2026-03-01T12:00:00Z", coded.Context["certificationDate"])
		deps.certRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCertificationUseCaseRevoke(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		deps := newCertificationUseCaseForTest(t)
		admin := newAdmin()
		capsuleID := uuid.Must(uuid.NewV7())
		existing := &capsuleDomain.Certification{
			ID:        uuid.Must(uuid.NewV7()),
			CapsuleID: capsuleID,
			Status:    capsuleDomain.CertificationStatusApproved,
		}

		deps.certRepo.On("GetActiveByCapsule", mock.Anything, capsuleID).Return(existing, nil)
		deps.certRepo.On("Revoke", mock.Anything, existing.ID, mock.Anything).Return(nil)
		deps.auditRecorder.On("Record", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action == audit.ActionRevokeCertification
		})).Return(nil)

		err := deps.useCase.Revoke(context.Background(), admin, capsuleID)

		assert.NoError(t, err)
		deps.certRepo.AssertExpectations(t)
	})

	t.Run("Error_NoActiveCertification", func(t *testing.T) {
		deps := newCertificationUseCaseForTest(t)
		capsuleID := uuid.Must(uuid.NewV7())
		deps.certRepo.On("GetActiveByCapsule", mock.Anything, capsuleID).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "certification not found"))

		err := deps.useCase.Revoke(context.Background(), newAdmin(), capsuleID)

		assert.ErrorIs(t, err, capsuleDomain.ErrCapsuleNotFound)
		deps.certRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})
}
