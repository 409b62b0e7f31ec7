package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/capsule/http/mocks"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityHTTP "github.com/guardianchain/capsule-api/internal/identity/http"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUser() *identityDomain.User {
	return &identityDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "owner@example.com",
		Tier:  identityDomain.TierCreator,
		Role:  identityDomain.RoleUser,
	}
}

// withUser injects the acting user into the request context, standing in for
// the authentication middleware.
func withUser(user *identityDomain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(identityHTTP.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCapsuleHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := newTestUser()

	newRouter := func(useCase *mocks.MockCapsuleUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCapsuleHandler(useCase, newTestLogger())
		router.POST("/v1/capsules", withUser(user), handler.CreateHandler)
		return router
	}

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsule := &capsuleDomain.Capsule{
			ID:     uuid.Must(uuid.NewV7()),
			Author: user.ID.String(),
			Title:  "Letter to 2036",
		}
		useCase.On("Create", mock.Anything, user, mock.Anything).Return(capsule, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/capsules",
			bytes.NewBufferString(`{"title":"Letter to 2036","content":"open me"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, capsule.ID.String(), body["id"])
		assert.Equal(t, false, body["minted"])
	})

	t.Run("Error_MissingTitle", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/capsules",
			bytes.NewBufferString(`{"content":"open me"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_QuotaExceeded", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		useCase.On("Create", mock.Anything, user, mock.Anything).
			Return(nil, capsuleDomain.QuotaExceededError(user.Tier, 5))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/capsules",
			bytes.NewBufferString(`{"title":"Letter to 2036","content":"open me"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "CAPSULE_QUOTA_EXCEEDED", body["code"])
		assert.Equal(t, user.Tier.String(), body["tier"])
	})
}

func TestCapsuleHandlerMint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := newTestUser()

	newRouter := func(useCase *mocks.MockCapsuleUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCapsuleHandler(useCase, newTestLogger())
		router.POST("/v1/capsules/mint", withUser(user), handler.MintHandler)
		return router
	}

	doMint := func(useCase *mocks.MockCapsuleUseCase, payload string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/capsules/mint",
			bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		newRouter(useCase).ServeHTTP(w, req)
		return w
	}

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Mint", mock.Anything, user, capsuleID).Return(&capsuleUseCase.MintOutput{
			CapsuleID:  capsuleID,
			NFTTokenID: "GCHAIN-1",
			NFTTxHash:  "0xabc",
			MintedAt:   time.Now().UTC(),
		}, nil)

		w := doMint(useCase, `{"capsule_id":"`+capsuleID.String()+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "GCHAIN-1", body["nft_token_id"])
		assert.Equal(t, "0xabc", body["nft_tx_hash"])
	})

	t.Run("Error_MissingCapsuleID", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}

		w := doMint(useCase, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_CAPSULE_ID", decodeBody(t, w)["code"])
		useCase.AssertNotCalled(t, "Mint", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidCapsuleID", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}

		w := doMint(useCase, `{"capsule_id":"not-a-uuid"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_OwnershipRequired", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Mint", mock.Anything, user, capsuleID).
			Return(nil, capsuleDomain.OwnershipRequiredError(capsuleID, "someone-else"))

		w := doMint(useCase, `{"capsule_id":"`+capsuleID.String()+`"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "CAPSULE_OWNERSHIP_REQUIRED", body["code"])
		assert.Equal(t, "someone-else", body["owner"])
	})

	t.Run("Error_AlreadyMinted", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Mint", mock.Anything, user, capsuleID).
			Return(nil, capsuleDomain.AlreadyMintedError("GCHAIN-old"))

		w := doMint(useCase, `{"capsule_id":"`+capsuleID.String()+`"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ALREADY_MINTED", body["code"])
		assert.Equal(t, "GCHAIN-old", body["nftTokenId"])
	})
}

func TestCapsuleHandlerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := newTestUser()

	newRouter := func(useCase *mocks.MockCapsuleUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCapsuleHandler(useCase, newTestLogger())
		router.GET("/v1/capsules/status/:id", withUser(user), handler.StatusHandler)
		return router
	}

	t.Run("Success_MintedAndCertified", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		tokenID := "GCHAIN-1"
		useCase.On("Status", mock.Anything, user, capsuleID).Return(&capsuleUseCase.StatusOutput{
			Capsule: &capsuleDomain.Capsule{
				ID:         capsuleID,
				Author:     user.ID.String(),
				NFTTokenID: &tokenID,
			},
			Certification: &capsuleDomain.Certification{
				ID:        uuid.Must(uuid.NewV7()),
				CapsuleID: capsuleID,
				Status:    capsuleDomain.CertificationStatusApproved,
			},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/capsules/status/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["minted"])
		assert.Equal(t, "GCHAIN-1", body["nft_token_id"])
		assert.Equal(t, true, body["certified"])
	})

	t.Run("Error_AccessDenied", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("Status", mock.Anything, user, capsuleID).
			Return(nil, capsuleDomain.ErrCapsuleAccessDenied)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/capsules/status/"+capsuleID.String(), nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "CAPSULE_ACCESS_DENIED", decodeBody(t, w)["code"])
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/capsules/status/not-a-uuid", nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCapsuleHandlerMintHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := newTestUser()

	newRouter := func(useCase *mocks.MockCapsuleUseCase) *gin.Engine {
		router := gin.New()
		handler := NewCapsuleHandler(useCase, newTestLogger())
		router.GET("/v1/capsules/:id/mint-logs", withUser(user), handler.MintHistoryHandler)
		return router
	}

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		txHash := "0xabc"
		errorMessage := "chain unavailable"
		useCase.On("MintHistory", mock.Anything, user, capsuleID, 20, 0).
			Return([]*capsuleDomain.MintLog{
				{
					ID:        uuid.Must(uuid.NewV7()),
					CapsuleID: capsuleID,
					UserID:    user.ID,
					Status:    capsuleDomain.MintLogStatusSuccess,
					TxHash:    &txHash,
					CreatedAt: time.Now().UTC(),
				},
				{
					ID:           uuid.Must(uuid.NewV7()),
					CapsuleID:    capsuleID,
					UserID:       user.ID,
					Status:       capsuleDomain.MintLogStatusFailed,
					ErrorMessage: &errorMessage,
					CreatedAt:    time.Now().UTC().Add(-time.Minute),
				},
			}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/capsules/"+capsuleID.String()+"/mint-logs", nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data, ok := body["data"].([]any)
		require.True(t, ok)
		require.Len(t, data, 2)
		first := data[0].(map[string]any)
		assert.Equal(t, "success", first["status"])
		assert.Equal(t, "0xabc", first["tx_hash"])
		second := data[1].(map[string]any)
		assert.Equal(t, "failed", second["status"])
		assert.Equal(t, "chain unavailable", second["error_message"])
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("MintHistory", mock.Anything, user, capsuleID, 5, 10).
			Return([]*capsuleDomain.MintLog{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/capsules/"+capsuleID.String()+"/mint-logs?offset=10&limit=5", nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data, ok := decodeBody(t, w)["data"].([]any)
		require.True(t, ok)
		assert.Empty(t, data)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/capsules/"+capsuleID.String()+"/mint-logs?offset=-1", nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "MintHistory",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_AccessDenied", func(t *testing.T) {
		useCase := &mocks.MockCapsuleUseCase{}
		capsuleID := uuid.Must(uuid.NewV7())
		useCase.On("MintHistory", mock.Anything, user, capsuleID, 20, 0).
			Return(nil, capsuleDomain.ErrCapsuleAccessDenied)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/capsules/"+capsuleID.String()+"/mint-logs", nil)
		newRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "CAPSULE_ACCESS_DENIED", decodeBody(t, w)["code"])
	})
}
