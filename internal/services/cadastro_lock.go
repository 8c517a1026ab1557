package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCommands is the subset of the traced Redis client the services use
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Locker serializes work on a key across service instances
type Locker interface {
	// Acquire returns false when another holder owns key
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// CadastroLockKey is the lock held while a CPF is being registered
func CadastroLockKey(cpf string) string {
	return "cadastro:lock:" + cpf
}

// RedisLocker implements Locker with SET NX and a TTL
type RedisLocker struct {
	redis redisCommands
}

// NewRedisLocker creates a Redis backed locker
func NewRedisLocker(redis redisCommands) *RedisLocker {
	return &RedisLocker{redis: redis}
}

// Acquire sets key if it is absent
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.redis.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// Release deletes key
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}
