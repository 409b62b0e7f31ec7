package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/capsule/http/mocks"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

func newTestAdmin() *identityDomain.User {
	return &identityDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "admin@example.com",
		Tier:  identityDomain.TierSovereign,
		Role:  identityDomain.RoleAdmin,
	}
}

func TestCertificationHandlerCertify(t *testing.T) {
	gin.SetMode(gin.TestMode)
	admin := newTestAdmin()

	newRouter := func(useCase *mocks.MockCertificationUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCertificationHandler(useCase, newTestLogger())
		router.POST("/v1/dao/certify/:id", withUser(admin), handler.CertifyHandler)
		return router
	}

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockCertificationUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()
		useCase.On("Certify", mock.Anything, admin, capsuleID).
			Return(&capsuleDomain.Certification{
				ID:          uuid.Must(uuid.NewV7()),
				CapsuleID:   capsuleID,
				CertifierID: admin.ID,
				Status:      capsuleDomain.CertificationStatusApproved,
				CertifiedAt: now,
				ExpiresAt:   now.AddDate(1, 0, 0),
			}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/dao/certify/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "approved", body["status"])
		assert.Equal(t, capsuleID.String(), body["capsule_id"])
	})

	t.Run("Error_AlreadyCertified", func(t *testing.T) {
		useCase := &mocks.MockCertificationUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		certifiedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		useCase.On("Certify", mock.Anything, admin, capsuleID).
			Return(nil, capsuleDomain.AlreadyCertifiedError(certifiedAt))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/dao/certify/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ALREADY_CERTIFIED", body["code"])
		assert.Equal(t, "2026-03-01T12:00:00Z", body["certificationDate"])
	})

	t.Run("Error_CapsuleNotFound", func(t *testing.T) {
		useCase := &mocks.MockCertificationUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Certify", mock.Anything, admin, capsuleID).
			Return(nil, capsuleDomain.ErrCapsuleNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/dao/certify/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CAPSULE_NOT_FOUND", decodeBody(t, w)["code"])
	})
}

func TestCertificationHandlerRevoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	admin := newTestAdmin()

	newRouter := func(useCase *mocks.MockCertificationUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCertificationHandler(useCase, newTestLogger())
		router.DELETE("/v1/dao/certify/:id", withUser(admin), handler.RevokeHandler)
		return router
	}

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockCertificationUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Revoke", mock.Anything, admin, capsuleID).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/dao/certify/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_NoActiveCertification", func(t *testing.T) {
		useCase := &mocks.MockCertificationUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Revoke", mock.Anything, admin, capsuleID).
			Return(capsuleDomain.ErrCapsuleNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/dao/certify/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
