package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianchain/capsule-api/internal/httputil"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	"github.com/guardianchain/capsule-api/internal/identity/http/dto"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
	customValidation "github.com/guardianchain/capsule-api/internal/validation"
)

// SessionHandler handles HTTP requests for login sessions.
type SessionHandler struct {
	sessionUseCase identityUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase identityUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler verifies credentials and opens a session.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the session token and user.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", output.User.ID.String()))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      dto.MapUserToResponse(output.User),
	})
}

// LogoutHandler revokes the current session.
// POST /v1/auth/logout - Requires authentication.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	plainToken := extractBearerToken(c)
	if plainToken == "" {
		httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
