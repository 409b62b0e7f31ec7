// Package ratelimit provides fixed window request rate limiting keyed by
// client IP and route class, backed by an injectable counter store.
package ratelimit

import (
	"context"
	"time"
)

// Route classes with independent rate limit policies.
const (
	RouteClassAuth    = "auth"
	RouteClassGeneral = "general"
	RouteClassAdmin   = "admin"
	RouteClassMint    = "mint"
)

// Policy configures the limiter for one route class.
type Policy struct {
	// RouteClass names the policy and is part of the counter key.
	RouteClass string
	// MaxRequests is the number of requests allowed per window.
	MaxRequests int64
	// Window is the fixed window size. Counters reset when the window elapses.
	Window time.Duration
	// SkipSuccessful makes only failed requests (status >= 400) count toward
	// the limit. Used on auth endpoints so successful logins are free.
	SkipSuccessful bool
}

// Store is a counter store for fixed window rate limiting. Implementations
// must expire a key once its window elapses so the next increment starts a
// fresh window.
type Store interface {
	// Increment adds one to the counter for key, starting a new window of the
	// given size if none is active. It returns the updated count and the time
	// the current window resets.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Decrement subtracts one from the counter for key if a window is active.
	// Used to un-count successful requests under SkipSuccessful policies.
	Decrement(ctx context.Context, key string) error
}
