package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := rl.Check(ctx, "team-a")
		assert.True(t, res.Allowed, "request %d should be allowed", i)
	}

	res := rl.Check(ctx, "team-a")
	assert.False(t, res.Allowed)
	assert.Equal(t, "rate_limiter", res.Guard)

	// Other keys are unaffected.
	assert.True(t, rl.Check(ctx, "team-b").Allowed)
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "k").Allowed)
	assert.False(t, rl.Check(ctx, "k").Allowed)

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Check(ctx, "k").Allowed)
}

func TestIdempotencyGuard(t *testing.T) {
	ig := NewIdempotencyGuard(time.Hour)
	ctx := context.Background()

	assert.True(t, ig.Check(ctx, "req-1").Allowed)

	res := ig.Check(ctx, "req-1")
	assert.False(t, res.Allowed)
	assert.Equal(t, "idempotency", res.Guard)

	// Empty keys always pass.
	assert.True(t, ig.Check(ctx, "").Allowed)
	assert.True(t, ig.Check(ctx, "").Allowed)

	// Removal re-enables retries.
	ig.Remove("req-1")
	assert.True(t, ig.Check(ctx, "req-1").Allowed)
}
