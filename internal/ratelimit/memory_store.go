package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window holds the counter state for one key.
type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is an in-process Store implementation. Suitable for single
// instance deployments; use RedisStore when running multiple replicas.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	done    chan struct{}
	closed  sync.Once
}

// NewMemoryStore creates a MemoryStore and starts a background goroutine that
// evicts expired windows. Call Close to stop it.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.cleanupExpired(time.Minute)
	return s
}

// Increment adds one to the counter for key, starting a new window if none is
// active or the previous one has expired.
func (s *MemoryStore) Increment(ctx context.Context, key string, windowSize time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(windowSize)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Decrement subtracts one from the counter for key if its window is still active.
func (s *MemoryStore) Decrement(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !s.now().Before(w.resetAt) {
		return nil
	}
	if w.count > 0 {
		w.count--
	}
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.closed.Do(func() {
		close(s.done)
	})
	return nil
}

// cleanupExpired periodically removes expired windows to bound memory use.
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, w := range s.windows {
				if !now.Before(w.resetAt) {
					delete(s.windows, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
