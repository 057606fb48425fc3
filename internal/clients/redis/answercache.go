package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-backend/internal/logger"
)

// AnswerCache stores computed answer payloads under a sliding TTL: every
// read renews the expiry, so an entry dies only after the idle window passes
// with no access.
type AnswerCache struct {
	rdb *goredis.Client
	log *logger.Logger
	ttl time.Duration
}

func NewAnswerCache(rdb *goredis.Client, log *logger.Logger, ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		rdb: rdb,
		log: log.With("component", "AnswerCache"),
		ttl: ttl,
	}
}

// Get returns the cached payload and refreshes its idle expiry. The second
// return is false on a miss.
func (c *AnswerCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.GetEx(ctx, key, c.ttl).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set writes the payload with a fresh idle expiry.
func (c *AnswerCache) Set(ctx context.Context, key string, value string) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}
