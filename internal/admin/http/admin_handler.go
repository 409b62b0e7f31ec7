// Package http provides HTTP handlers for admin operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guardianchain/capsule-api/internal/admin/http/dto"
	adminUseCase "github.com/guardianchain/capsule-api/internal/admin/usecase"
	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	"github.com/guardianchain/capsule-api/internal/httputil"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityHTTP "github.com/guardianchain/capsule-api/internal/identity/http"
	identityDTO "github.com/guardianchain/capsule-api/internal/identity/http/dto"
	customValidation "github.com/guardianchain/capsule-api/internal/validation"
)

// AdminHandler handles HTTP requests for admin operations.
type AdminHandler struct {
	adminUseCase adminUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(useCase adminUseCase.AdminUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: useCase,
		logger:       logger,
	}
}

// UpdateTierHandler changes a user's membership tier.
// POST /v1/admin/users/:id/tier - Requires admin access; assigning the ADMIN
// tier additionally requires a sovereign actor.
func (h *AdminHandler) UpdateTierHandler(c *gin.Context) {
	actor, ok := identityHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, h.logger)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("Invalid user ID"), h.logger)
		return
	}

	var req dto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	updated, err := h.adminUseCase.UpdateTier(c.Request.Context(), actor, targetID, req.Tier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, identityDTO.MapUserToResponse(updated))
}

// StatsHandler returns aggregate platform counts.
// GET /v1/admin/stats - Requires admin access.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.adminUseCase.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthHandler reports the state of the system's dependencies.
// GET /v1/admin/system/health - Requires sovereign access.
func (h *AdminHandler) HealthHandler(c *gin.Context) {
	report, err := h.adminUseCase.Health(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHealthReportToResponse(report))
}
