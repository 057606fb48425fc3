package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-backend/internal/logger"
)

// ErrLockNotAcquired is returned when the bounded wait expires without the
// lock being obtained. Callers treat it as a transient outcome and may retry.
var ErrLockNotAcquired = errors.New("redis lock: not acquired within wait window")

// releaseScript deletes the lock key only while it still holds our token, so
// a lease that already expired and was re-acquired by someone else is never
// released from under them.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out cross-process leases. Acquire polls SET NX until the wait
// window runs out; every lease auto-expires so a crashed holder cannot block
// the key forever.
type Locker struct {
	rdb   *goredis.Client
	log   *logger.Logger
	wait  time.Duration
	lease time.Duration
	poll  time.Duration
}

type Lease struct {
	Key   string
	token string
}

func NewLocker(rdb *goredis.Client, log *logger.Logger, wait, lease time.Duration) *Locker {
	poll := 50 * time.Millisecond
	if wait < poll {
		poll = wait / 4
		if poll <= 0 {
			poll = time.Millisecond
		}
	}
	return &Locker{
		rdb:   rdb,
		log:   log.With("component", "Locker"),
		wait:  wait,
		lease: lease,
		poll:  poll,
	}
}

// Acquire blocks up to the configured wait for the key's lock. On timeout it
// returns ErrLockNotAcquired, never an arbitrary error.
func (l *Locker) Acquire(ctx context.Context, key string) (*Lease, error) {
	token := uuid.NewString()
	deadline := time.NewTimer(l.wait)
	defer deadline.Stop()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return &Lease{Key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrLockNotAcquired
		case <-ticker.C:
		}
	}
}

// Release frees the lease if it is still held by this owner. Releasing an
// expired or reassigned lease is a no-op.
func (l *Locker) Release(ctx context.Context, lease *Lease) error {
	if lease == nil {
		return nil
	}
	released, err := releaseScript.Run(ctx, l.rdb, []string{lease.Key}, lease.token).Int()
	if err != nil {
		return err
	}
	if released == 0 {
		l.log.Debug("Lock lease already expired or reassigned, skipping release", "key", lease.Key)
	}
	return nil
}
