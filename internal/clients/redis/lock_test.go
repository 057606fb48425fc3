package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-backend/internal/logger"
)

func lockFixture(t *testing.T, wait, lease time.Duration) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewLocker(rdb, log, wait, lease), mr
}

func TestLockerAcquireAndRelease(t *testing.T) {
	locker, mr := lockFixture(t, time.Second, 15*time.Second)
	ctx := context.Background()

	lease, err := locker.Acquire(ctx, "lock:answer:1")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !mr.Exists("lock:answer:1") {
		t.Fatal("lock key missing after acquire")
	}
	if err := locker.Release(ctx, lease); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if mr.Exists("lock:answer:1") {
		t.Fatal("lock key still present after release")
	}
}

func TestLockerBoundedWaitExpires(t *testing.T) {
	locker, mr := lockFixture(t, 50*time.Millisecond, 15*time.Second)
	mr.Set("lock:busy", "other-holder")

	start := time.Now()
	_, err := locker.Acquire(context.Background(), "lock:busy")
	if !errors.Is(err, ErrLockNotAcquired) {
		t.Fatalf("err = %v, want ErrLockNotAcquired", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Acquire blocked %v, want bounded wait", elapsed)
	}
}

func TestLockerReleaseDoesNotStealReassignedLock(t *testing.T) {
	locker, mr := lockFixture(t, time.Second, 15*time.Second)
	ctx := context.Background()

	lease, err := locker.Acquire(ctx, "lock:answer:2")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	// Lease expires and another process takes the lock.
	mr.FastForward(16 * time.Second)
	mr.Set("lock:answer:2", "new-holder")

	if err := locker.Release(ctx, lease); err != nil {
		t.Fatalf("Release after expiry: %v", err)
	}
	got, err := mr.Get("lock:answer:2")
	if err != nil {
		t.Fatalf("lock key gone: %v", err)
	}
	if got != "new-holder" {
		t.Fatalf("lock value = %q, release stole the new holder's lock", got)
	}
}

func TestLockerLeaseExpiresOnItsOwn(t *testing.T) {
	locker, mr := lockFixture(t, 100*time.Millisecond, time.Second)
	ctx := context.Background()

	if _, err := locker.Acquire(ctx, "lock:answer:3"); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	mr.FastForward(2 * time.Second)

	// A crashed holder never blocks the key past the lease.
	if _, err := locker.Acquire(ctx, "lock:answer:3"); err != nil {
		t.Fatalf("Acquire after lease expiry: %v", err)
	}
}

func TestLockerAcquireHonorsContextCancel(t *testing.T) {
	locker, mr := lockFixture(t, 10*time.Second, 15*time.Second)
	mr.Set("lock:held", "other")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := locker.Acquire(ctx, "lock:held")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
