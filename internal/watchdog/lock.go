package watchdog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLock implementa Locker com SetNX + TTL: o TTL garante que um
// processo morto não deixa o watchdog travado para sempre.
type RedisLock struct {
	Client *redis.Client
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.Client.SetNX(ctx, key, "1", ttl).Result()
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
	return l.Client.Del(ctx, key).Err()
}
