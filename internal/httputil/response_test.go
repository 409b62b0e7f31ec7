package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

func createTestContext(w *httptest.ResponseRecorder) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            apperrors.NewCoded(apperrors.ErrNotFound, "CAPSULE_NOT_FOUND", "Capsule not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "CAPSULE_NOT_FOUND",
		},
		{
			name:           "conflict",
			err:            apperrors.NewCoded(apperrors.ErrConflict, "ALREADY_MINTED", "Capsule already minted as NFT"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_MINTED",
		},
		{
			name:           "invalid input",
			err:            apperrors.NewCoded(apperrors.ErrInvalidInput, "INVALID_TIER", "Invalid tier"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_TIER",
		},
		{
			name:           "unauthorized",
			err:            apperrors.NewCoded(apperrors.ErrUnauthorized, "AUTH_REQUIRED", "Authentication required"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "AUTH_REQUIRED",
		},
		{
			name:           "forbidden",
			err:            apperrors.NewCoded(apperrors.ErrForbidden, "ADMIN_REQUIRED", "Admin access required"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "ADMIN_REQUIRED",
		},
		{
			name:           "rate limited",
			err:            apperrors.NewCoded(apperrors.ErrRateLimited, "RATE_LIMITED", "Too many requests"),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   "RATE_LIMITED",
		},
		{
			name:           "uncoded error hides details",
			err:            fmt.Errorf("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c := createTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleErrorGinContextFlattening(t *testing.T) {
	w := httptest.NewRecorder()
	c := createTestContext(w)

	err := apperrors.NewCoded(apperrors.ErrConflict, "ALREADY_CERTIFIED", "Capsule is already certified").
		WithContext("certificationDate", "2026-01-15T00:00:00Z")
	HandleErrorGin(c, err, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ALREADY_CERTIFIED", body["code"])
	assert.Equal(t, "Capsule is already certified", body["error"])
	assert.Equal(t, "2026-01-15T00:00:00Z", body["certificationDate"])
}

func TestHandleErrorGinWrappedCodedError(t *testing.T) {
	w := httptest.NewRecorder()
	c := createTestContext(w)

	coded := apperrors.NewCoded(apperrors.ErrNotFound, "USER_NOT_FOUND", "User not found")
	HandleErrorGin(c, apperrors.Wrap(coded, "update tier"), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestHandleErrorGinNilError(t *testing.T) {
	w := httptest.NewRecorder()
	c := createTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.Bytes())
}

func TestHandleBadRequestGin(t *testing.T) {
	w := httptest.NewRecorder()
	c := createTestContext(w)

	HandleBadRequestGin(c, fmt.Errorf("invalid JSON body"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "BAD_REQUEST", body["code"])
	assert.Equal(t, "invalid JSON body", body["error"])
}

func TestHandleValidationErrorGin(t *testing.T) {
	w := httptest.NewRecorder()
	c := createTestContext(w)

	HandleValidationErrorGin(c, fmt.Errorf("email: must be a valid email address"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestMakeJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	MakeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
}
