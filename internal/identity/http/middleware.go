package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guardianchain/capsule-api/internal/httputil"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
)

// extractBearerToken parses a Bearer token from the Authorization header.
// Matching is case-insensitive. Returns "" when the header is missing or malformed.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}

// AuthenticationMiddleware authenticates requests via Bearer session token.
//
// The middleware:
//  1. Extracts the Bearer token from the Authorization header (case-insensitive)
//  2. Resolves the token to a user via sessionUseCase.Authenticate
//  3. Stores the user in the request context for downstream guards and handlers
//
// Missing, malformed, unknown, expired, and revoked tokens all produce a 401
// with code AUTH_REQUIRED.
func AuthenticationMiddleware(
	sessionUseCase identityUseCase.SessionUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken := extractBearerToken(c)
		if plainToken == "" {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, logger)
			c.Abort()
			return
		}

		user, err := sessionUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin guards a route group for admin access. A user passes when they
// hold the admin role or at least the SOVEREIGN tier. Both grants and denials
// are logged with the acting user and their level.
//
// MUST be used after AuthenticationMiddleware.
func RequireAdmin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, logger)
			c.Abort()
			return
		}

		if !user.MeetsAdmin() {
			logger.Info("admin access denied",
				slog.String("user_id", user.ID.String()),
				slog.String("tier", user.Tier.String()),
				slog.String("path", c.FullPath()))
			httputil.HandleErrorGin(c, identityDomain.AdminRequiredError(user.Tier), logger)
			c.Abort()
			return
		}

		logger.Info("admin access granted",
			slog.String("user_id", user.ID.String()),
			slog.String("tier", user.Tier.String()),
			slog.String("role", string(user.Role)),
			slog.String("path", c.FullPath()))

		c.Next()
	}
}

// RequireSovereign guards a route group for exactly the SOVEREIGN tier. The
// admin role alone does not pass this guard.
//
// MUST be used after AuthenticationMiddleware.
func RequireSovereign(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, logger)
			c.Abort()
			return
		}

		if !user.IsSovereign() {
			logger.Info("sovereign access denied",
				slog.String("user_id", user.ID.String()),
				slog.String("tier", user.Tier.String()),
				slog.String("path", c.FullPath()))
			httputil.HandleErrorGin(c, identityDomain.SovereignRequiredError(user.Tier), logger)
			c.Abort()
			return
		}

		logger.Info("sovereign access granted",
			slog.String("user_id", user.ID.String()),
			slog.String("tier", user.Tier.String()),
			slog.String("path", c.FullPath()))

		c.Next()
	}
}

// RequireTier guards a route group for a minimum membership tier.
//
// MUST be used after AuthenticationMiddleware.
func RequireTier(minimum identityDomain.Tier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, identityDomain.ErrAuthRequired, logger)
			c.Abort()
			return
		}

		if !user.Tier.AtLeast(minimum) {
			logger.Info("tier access denied",
				slog.String("user_id", user.ID.String()),
				slog.String("tier", user.Tier.String()),
				slog.String("required_tier", minimum.String()),
				slog.String("path", c.FullPath()))
			err := identityDomain.AdminRequiredError(user.Tier)
			if minimum != identityDomain.TierAdmin {
				err = identityDomain.TierRequiredError(minimum, user.Tier)
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		logger.Info("tier access granted",
			slog.String("user_id", user.ID.String()),
			slog.String("tier", user.Tier.String()),
			slog.String("required_tier", minimum.String()),
			slog.String("path", c.FullPath()))

		c.Next()
	}
}
