package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mercato/sales-api/internal/core/domain"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxAttempts, window), mr
}

func TestLoginLimiter_AllowsUnderBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	if err := limiter.Allow(ctx, "a@x.com"); err != nil {
		t.Fatalf("fresh account should be allowed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.RecordFailure(ctx, "a@x.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	if err := limiter.Allow(ctx, "a@x.com"); err != nil {
		t.Fatalf("2 of 3 failures should still be allowed: %v", err)
	}
}

func TestLoginLimiter_LocksOutAtBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.RecordFailure(ctx, "a@x.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	if err := limiter.Allow(ctx, "a@x.com"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// Other accounts are unaffected.
	if err := limiter.Allow(ctx, "b@x.com"); err != nil {
		t.Fatalf("unrelated account locked out: %v", err)
	}
}

func TestLoginLimiter_ResetClearsBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "a@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := limiter.Allow(ctx, "a@x.com"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected lockout, got %v", err)
	}

	if err := limiter.Reset(ctx, "a@x.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := limiter.Allow(ctx, "a@x.com"); err != nil {
		t.Fatalf("reset account should be allowed: %v", err)
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "a@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := limiter.Allow(ctx, "a@x.com"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected lockout, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.Allow(ctx, "a@x.com"); err != nil {
		t.Fatalf("expired window should unlock: %v", err)
	}
}
