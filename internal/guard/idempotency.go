package guard

import (
	"context"
	"sync"
	"time"
)

// IdempotencyGuard deduplicates mutation requests by the Idempotency-Key
// header. Keys expire after the retention window so the map stays bounded
// over a multi-day event.
type IdempotencyGuard struct {
	mu        sync.Mutex
	seen      map[string]time.Time
	retention time.Duration
}

// NewIdempotencyGuard creates an in-memory idempotency guard.
func NewIdempotencyGuard(retention time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{
		seen:      make(map[string]time.Time),
		retention: retention,
	}
}

// Check returns whether the given key has already been processed. An empty
// key always passes: the header is optional.
func (ig *IdempotencyGuard) Check(_ context.Context, key string) Result {
	if key == "" {
		return Result{Allowed: true}
	}

	ig.mu.Lock()
	defer ig.mu.Unlock()

	now := time.Now()
	if at, ok := ig.seen[key]; ok && now.Sub(at) < ig.retention {
		return Result{
			Allowed: false,
			Reason:  "duplicate request: idempotency key already processed",
			Guard:   "idempotency",
		}
	}

	ig.seen[key] = now
	ig.sweep(now)
	return Result{Allowed: true}
}

// Remove deletes a key so a failed request can be retried with the same key.
func (ig *IdempotencyGuard) Remove(key string) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	delete(ig.seen, key)
}

func (ig *IdempotencyGuard) sweep(now time.Time) {
	if len(ig.seen) < 4096 {
		return
	}
	for k, at := range ig.seen {
		if now.Sub(at) >= ig.retention {
			delete(ig.seen, k)
		}
	}
}
