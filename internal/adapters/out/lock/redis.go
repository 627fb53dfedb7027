package lock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleetdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLease         = 30 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	defaultPrefix        = "fleet"
)

// The key is deleted only while it still carries the owner's token, so a
// lease that expired and was taken by another process is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions tunes RedisLocker. Zero values select defaults.
type RedisOptions struct {
	Prefix        string
	Lease         time.Duration
	WaitTimeout   time.Duration
	RetryInterval time.Duration
}

// RedisLocker shares locks between every process using the same Redis.
// A lock is a key set with NX and a lease; waiting callers poll.
type RedisLocker struct {
	client  redis.UniversalClient
	options RedisOptions
	logger  *zap.Logger
}

func NewRedisLocker(client redis.UniversalClient, options RedisOptions, logger *zap.Logger) *RedisLocker {
	if strings.TrimSpace(options.Prefix) == "" {
		options.Prefix = defaultPrefix
	}
	if options.Lease <= 0 {
		options.Lease = defaultLease
	}
	if options.WaitTimeout <= 0 {
		options.WaitTimeout = DefaultWaitTimeout
	}
	if options.RetryInterval <= 0 {
		options.RetryInterval = defaultRetryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client:  client,
		options: options,
		logger:  logger.With(zap.String("component", "redis_locker")),
	}
}

// Lock polls until the key is set, ctx ends or the wait timeout passes.
// The timeout yields errs.ErrConflict.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.options.Prefix + ":lock:" + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.options.WaitTimeout)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.options.Lease).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}

		wait := l.options.RetryInterval
		if remaining := time.Until(deadline); remaining <= 0 {
			return nil, errs.NewConflictError("lock", key)
		} else if remaining < wait {
			wait = remaining
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("wait for lock %s: %w", key, ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be done when the lock is released.
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := unlockScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("release lock failed", zap.String("key", redisKey), zap.Error(err))
			}
		})
	}
}
