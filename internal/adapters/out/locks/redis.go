package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/ports"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL   = 30 * time.Second
	keyPrefix    = "atelier:lock:"
	retryMin     = 16 * time.Millisecond
	retryMax     = 512 * time.Millisecond
	retryAttempt = 64
)

// RedisLocker serializes keys across processes with bsm/redislock. A lock
// expires after its TTL if the holder dies, so critical sections must stay
// well below it.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.ExponentialBackoff(retryMin, retryMax), retryAttempt),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ports.ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}
