package scoring

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	redisclient "github.com/quizforge/quizforge-backend/internal/clients/redis"
	"github.com/quizforge/quizforge-backend/internal/logger"
)

// CacheKey fingerprints a submission: the app id joined with the hex md5 of
// the JSON-serialized answer list.
func CacheKey(appID uuid.UUID, choices []string) string {
	raw, _ := json.Marshal(choices)
	sum := md5.Sum(raw)
	return appID.String() + ":" + hex.EncodeToString(sum[:])
}

// SingleFlight deduplicates an expensive idempotent computation across
// processes: reads are lock-free cache hits; the miss path runs under a
// per-key lease lock so at most one computation per key is in flight
// cluster-wide.
type SingleFlight struct {
	cache  *redisclient.AnswerCache
	locker *redisclient.Locker
	log    *logger.Logger
}

func NewSingleFlight(cache *redisclient.AnswerCache, locker *redisclient.Locker, log *logger.Logger) *SingleFlight {
	return &SingleFlight{
		cache:  cache,
		locker: locker,
		log:    log.With("component", "SingleFlight"),
	}
}

// Do returns the cached value for key, or computes and caches it under the
// key's lock. When the bounded lock wait is exhausted it returns a
// LOCK_UNAVAILABLE error, a transient outcome the caller may retry.
func (f *SingleFlight) Do(ctx context.Context, key string, compute func(ctx context.Context) (string, error)) (string, error) {
	value, hit, err := f.cache.Get(ctx, key)
	if err != nil {
		return "", apierr.System(fmt.Errorf("answer cache read: %w", err))
	}
	if hit {
		return value, nil
	}

	lease, err := f.locker.Acquire(ctx, "lock:"+key)
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return "", apierr.LockUnavailable(err)
		}
		return "", apierr.System(fmt.Errorf("answer lock acquire: %w", err))
	}
	defer func() {
		if releaseErr := f.locker.Release(ctx, lease); releaseErr != nil {
			f.log.Warn("Failed to release answer lock", "key", key, "error", releaseErr)
		}
	}()

	// The previous holder may have finished the same computation while we
	// were waiting on the lock.
	value, hit, err = f.cache.Get(ctx, key)
	if err == nil && hit {
		return value, nil
	}

	value, err = compute(ctx)
	if err != nil {
		return "", err
	}
	if err := f.cache.Set(ctx, key, value); err != nil {
		f.log.Warn("Failed to write answer cache", "key", key, "error", err)
	}
	return value, nil
}
