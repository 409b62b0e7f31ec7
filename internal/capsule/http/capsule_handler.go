// Package http provides HTTP handlers for capsule operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	"github.com/guardianchain/capsule-api/internal/capsule/http/dto"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	"github.com/guardianchain/capsule-api/internal/httputil"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityHTTP "github.com/guardianchain/capsule-api/internal/identity/http"
	customValidation "github.com/guardianchain/capsule-api/internal/validation"
)

// CapsuleHandler handles HTTP requests for capsule operations.
type CapsuleHandler struct {
	capsuleUseCase capsuleUseCase.CapsuleUseCase
	logger         *slog.Logger
}

// NewCapsuleHandler creates a new capsule handler with required dependencies.
func NewCapsuleHandler(
	useCase capsuleUseCase.CapsuleUseCase,
	logger *slog.Logger,
) *CapsuleHandler {
	return &CapsuleHandler{
		capsuleUseCase: useCase,
		logger:         logger,
	}
}

// actingUser pulls the authenticated user from the request context.
func actingUser(c *gin.Context, logger *slog.Logger) (*identityDomain.User, bool) {
	user, ok := identityHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, logger)
		return nil, false
	}
	return user, true
}

// parseCapsuleID parses the :id path parameter.
func parseCapsuleID(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	capsuleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("Invalid capsule ID"), logger)
		return uuid.Nil, false
	}
	return capsuleID, true
}

// CreateHandler creates a new capsule owned by the caller.
// POST /v1/capsules - Requires authentication.
// Returns 201 Created with the new capsule.
func (h *CapsuleHandler) CreateHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateCapsuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	capsule, err := h.capsuleUseCase.Create(c.Request.Context(), user, &capsuleDomain.CreateCapsuleInput{
		Author:  user.ID.String(),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCapsuleToResponse(capsule))
}

// GetHandler returns a capsule to its owner or an admin.
// GET /v1/capsules/:id - Requires authentication.
func (h *CapsuleHandler) GetHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}
	capsuleID, ok := parseCapsuleID(c, h.logger)
	if !ok {
		return
	}

	capsule, err := h.capsuleUseCase.Get(c.Request.Context(), user, capsuleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCapsuleToResponse(capsule))
}

// MintHandler mints the caller's capsule as an NFT.
// POST /v1/capsules/mint - Requires authentication and capsule ownership.
func (h *CapsuleHandler) MintHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if req.CapsuleID == "" {
		httputil.HandleErrorGin(c, capsuleDomain.ErrMissingCapsuleID, h.logger)
		return
	}

	capsuleID, err := uuid.Parse(req.CapsuleID)
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("Invalid capsule ID"), h.logger)
		return
	}

	output, err := h.capsuleUseCase.Mint(c.Request.Context(), user, capsuleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMintOutputToResponse(output))
}

// MintHistoryHandler lists the mint attempts recorded for a capsule.
// GET /v1/capsules/:id/mint-logs?offset=0&limit=20 - Requires authentication;
// owner or admin. Entries are ordered by created_at descending.
func (h *CapsuleHandler) MintHistoryHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}
	capsuleID, ok := parseCapsuleID(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	mintLogs, err := h.capsuleUseCase.MintHistory(c.Request.Context(), user, capsuleID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMintLogsToListResponse(mintLogs))
}

// StatusHandler returns the mint and certification state of a capsule.
// GET /v1/capsules/status/:id - Requires authentication; owner or admin.
func (h *CapsuleHandler) StatusHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}
	capsuleID, ok := parseCapsuleID(c, h.logger)
	if !ok {
		return
	}

	output, err := h.capsuleUseCase.Status(c.Request.Context(), user, capsuleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusOutputToResponse(output))
}
