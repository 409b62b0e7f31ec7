package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianchain/capsule-api/internal/capsule/http/dto"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
	"github.com/guardianchain/capsule-api/internal/httputil"
)

// CertificationHandler handles HTTP requests for DAO certification operations.
type CertificationHandler struct {
	certificationUseCase capsuleUseCase.CertificationUseCase
	logger               *slog.Logger
}

// NewCertificationHandler creates a new certification handler with required dependencies.
func NewCertificationHandler(
	useCase capsuleUseCase.CertificationUseCase,
	logger *slog.Logger,
) *CertificationHandler {
	return &CertificationHandler{
		certificationUseCase: useCase,
		logger:               logger,
	}
}

// CertifyHandler records a DAO certification for a capsule.
// POST /v1/dao/certify/:id - Requires admin access.
// Returns 201 Created with the certification.
func (h *CertificationHandler) CertifyHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}
	capsuleID, ok := parseCapsuleID(c, h.logger)
	if !ok {
		return
	}

	certification, err := h.certificationUseCase.Certify(c.Request.Context(), user, capsuleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCertificationToResponse(certification))
}

// RevokeHandler revokes the active certification of a capsule.
// DELETE /v1/dao/certify/:id - Requires sovereign access.
func (h *CertificationHandler) RevokeHandler(c *gin.Context) {
	user, ok := actingUser(c, h.logger)
	if !ok {
		return
	}
	capsuleID, ok := parseCapsuleID(c, h.logger)
	if !ok {
		return
	}

	if err := h.certificationUseCase.Revoke(c.Request.Context(), user, capsuleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "certification revoked"})
}
