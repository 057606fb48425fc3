package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	redisclient "github.com/quizforge/quizforge-backend/internal/clients/redis"
)

func flightFixture(t *testing.T, wait time.Duration) (*SingleFlight, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := testLogger(t)
	cache := redisclient.NewAnswerCache(rdb, log, 5*time.Minute)
	locker := redisclient.NewLocker(rdb, log, wait, 15*time.Second)
	return NewSingleFlight(cache, locker, log), mr
}

func TestSingleFlightComputesOncePerKey(t *testing.T) {
	flight, _ := flightFixture(t, 3*time.Second)
	key := CacheKey(uuid.New(), []string{"A", "B"})

	computes := 0
	compute := func(ctx context.Context) (string, error) {
		computes++
		return `{"resultName":"calm"}`, nil
	}

	for i := 0; i < 5; i++ {
		got, err := flight.Do(context.Background(), key, compute)
		if err != nil {
			t.Fatalf("Do #%d: %v", i, err)
		}
		if got != `{"resultName":"calm"}` {
			t.Fatalf("Do #%d = %q", i, got)
		}
	}
	if computes != 1 {
		t.Fatalf("compute ran %d times, want 1", computes)
	}
}

func TestSingleFlightHeldLockIsLockUnavailable(t *testing.T) {
	flight, mr := flightFixture(t, 50*time.Millisecond)
	key := CacheKey(uuid.New(), []string{"A"})

	// Simulate another process holding the key's lock.
	mr.Set("lock:"+key, "someone-else")

	computes := 0
	_, err := flight.Do(context.Background(), key, func(ctx context.Context) (string, error) {
		computes++
		return "value", nil
	})
	if !apierr.Is(err, apierr.CodeLockUnavailable) {
		t.Fatalf("err = %v, want LOCK_UNAVAILABLE", err)
	}
	if computes != 0 {
		t.Fatalf("compute ran %d times while lock was held, want 0", computes)
	}
}

func TestSingleFlightServesValueCachedByPreviousHolder(t *testing.T) {
	flight, mr := flightFixture(t, time.Second)
	key := CacheKey(uuid.New(), []string{"A"})

	// Another process already finished and cached the value.
	mr.Set(key, "precomputed")

	computes := 0
	got, err := flight.Do(context.Background(), key, func(ctx context.Context) (string, error) {
		computes++
		return "fresh", nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "precomputed" {
		t.Fatalf("Do = %q, want cached value", got)
	}
	if computes != 0 {
		t.Fatalf("compute ran %d times on cache hit, want 0", computes)
	}
}

func TestSingleFlightComputeErrorIsNotCached(t *testing.T) {
	flight, _ := flightFixture(t, time.Second)
	key := CacheKey(uuid.New(), []string{"A"})

	_, err := flight.Do(context.Background(), key, func(ctx context.Context) (string, error) {
		return "", apierr.System(errTest)
	})
	if !apierr.Is(err, apierr.CodeSystemError) {
		t.Fatalf("err = %v, want SYSTEM_ERROR", err)
	}

	// A later call must run compute again and succeed.
	got, err := flight.Do(context.Background(), key, func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("Do after failure: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("Do = %q, want %q", got, "recovered")
	}
}

func TestCacheKeyIsDeterministicAndOrderSensitive(t *testing.T) {
	appID := uuid.New()
	a := CacheKey(appID, []string{"A", "B"})
	b := CacheKey(appID, []string{"A", "B"})
	c := CacheKey(appID, []string{"B", "A"})
	if a != b {
		t.Fatalf("same submission produced different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Fatal("reordered choices produced the same key")
	}
	if otherApp := CacheKey(uuid.New(), []string{"A", "B"}); otherApp == a {
		t.Fatal("different apps produced the same key")
	}
}
