package ratelimit

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/guardianchain/capsule-api/internal/errors"
	"github.com/guardianchain/capsule-api/internal/httputil"
	"github.com/guardianchain/capsule-api/internal/metrics"
)

// Middleware returns a Gin middleware enforcing the given policy. Requests are
// counted per (client IP, route class) in the store; requests over the limit
// are rejected with a RATE_LIMITED error and a Retry-After header. Under a
// SkipSuccessful policy, requests that finish below status 400 are un-counted
// after the handler runs.
//
// A store failure never blocks traffic: the request is allowed through and the
// failure is logged.
func Middleware(
	store Store,
	policy Policy,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("%s:%s", policy.RouteClass, c.ClientIP())

		count, resetAt, err := store.Increment(ctx, key, policy.Window)
		if err != nil {
			logger.Warn("rate limit store unavailable, allowing request",
				slog.String("route_class", policy.RouteClass),
				slog.Any("error", err))
			c.Next()
			return
		}

		remaining := policy.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(policy.MaxRequests, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > policy.MaxRequests {
			retryAfter := int64(math.Ceil(time.Until(resetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))

			logger.Debug("rate limit exceeded",
				slog.String("route_class", policy.RouteClass),
				slog.String("client_ip", c.ClientIP()),
				slog.Int64("count", count))
			businessMetrics.RecordRateLimitRejection(ctx, policy.RouteClass)

			rateErr := apperrors.NewCoded(
				apperrors.ErrRateLimited,
				"RATE_LIMITED",
				"Too many requests, please try again later",
			).WithContext("retryAfter", retryAfter)
			httputil.HandleErrorGin(c, rateErr, logger)
			c.Abort()
			return
		}

		c.Next()

		if policy.SkipSuccessful && c.Writer.Status() < 400 {
			if err := store.Decrement(ctx, key); err != nil {
				logger.Warn("rate limit decrement failed",
					slog.String("route_class", policy.RouteClass),
					slog.Any("error", err))
			}
		}
	}
}
