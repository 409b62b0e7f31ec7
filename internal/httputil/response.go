// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

// ErrorBody builds the JSON error body for a domain error. The shape is
// {"error": <message>, "code": <CODE>, ...context} with any context entries
// flattened into the top level.
func ErrorBody(code, message string, context map[string]any) gin.H {
	body := gin.H{
		"error": message,
		"code":  code,
	}
	for k, v := range context {
		body[k] = v
	}
	return body
}

// statusForError maps a domain error category to an HTTP status code.
func statusForError(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON
// error response. Coded errors carry their own code, message, and context;
// anything else is treated as an internal failure and the details are logged
// server-side rather than returned to the caller.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := statusForError(err)
	var body gin.H

	if coded, ok := apperrors.AsCoded(err); ok {
		body = ErrorBody(coded.Code, coded.Message, coded.Context)
	} else {
		body = ErrorBody("INTERNAL_ERROR", "An internal error occurred", nil)
		statusCode = http.StatusInternalServerError
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", body["code"].(string)),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, body)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorBody("BAD_REQUEST", err.Error(), nil))
}

// HandleValidationErrorGin writes a 400 response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorBody("VALIDATION_ERROR", err.Error(), nil))
}

// MakeJSONResponse writes a JSON response with the given status code using the
// standard library. Used by handlers that run outside the gin router (health
// and readiness probes on the metrics server).
func MakeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
