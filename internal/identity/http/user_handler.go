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

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	userUseCase identityUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase identityUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler registers a new user account.
// POST /v1/auth/register - No authentication required.
// Returns 201 Created with the new user.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &identityDomain.CreateUserInput{
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		WalletAddress: req.WalletAddress,
	}

	user, err := h.userUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// CurrentUserHandler returns the authenticated user.
// GET /v1/auth/me - Requires authentication.
func (h *UserHandler) CurrentUserHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
