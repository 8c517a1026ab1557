package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"github.com/redis/go-redis/v9"
)

// SistemasCacheKey holds the JSON encoded systems catalogue
const SistemasCacheKey = "sistemas:all"

// ErrCacheMiss is returned when a key is not cached
var ErrCacheMiss = errors.New("cache miss")

// SistemaCache caches the systems catalogue in Redis
type SistemaCache struct {
	redis redisCommands
	ttl   time.Duration
}

// NewSistemaCache creates a catalogue cache with the given TTL
func NewSistemaCache(redis redisCommands, ttl time.Duration) *SistemaCache {
	return &SistemaCache{redis: redis, ttl: ttl}
}

// Get returns the cached catalogue or ErrCacheMiss
func (c *SistemaCache) Get(ctx context.Context) ([]models.Sistema, error) {
	ctx, span := utils.TraceCacheGet(ctx, SistemasCacheKey)
	defer span.End()

	raw, err := c.redis.Get(ctx, SistemasCacheKey).Result()
	if err == redis.Nil {
		observability.CacheHits.WithLabelValues("sistemas", "miss").Inc()
		utils.AddSpanAttribute(span, "cache.hit", false)
		return nil, ErrCacheMiss
	}
	if err != nil {
		observability.CacheHits.WithLabelValues("sistemas", "error").Inc()
		return nil, fmt.Errorf("get %s: %w", SistemasCacheKey, err)
	}

	var sistemas []models.Sistema
	if err := json.Unmarshal([]byte(raw), &sistemas); err != nil {
		observability.CacheHits.WithLabelValues("sistemas", "error").Inc()
		return nil, fmt.Errorf("decode %s: %w", SistemasCacheKey, err)
	}

	observability.CacheHits.WithLabelValues("sistemas", "hit").Inc()
	utils.AddSpanAttribute(span, "cache.hit", true)
	return sistemas, nil
}

// Set stores the catalogue
func (c *SistemaCache) Set(ctx context.Context, sistemas []models.Sistema) error {
	raw, err := json.Marshal(sistemas)
	if err != nil {
		return fmt.Errorf("encode %s: %w", SistemasCacheKey, err)
	}
	if err := c.redis.Set(ctx, SistemasCacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", SistemasCacheKey, err)
	}
	return nil
}

// Invalidate drops the cached catalogue
func (c *SistemaCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, SistemasCacheKey).Err(); err != nil {
		return fmt.Errorf("del %s: %w", SistemasCacheKey, err)
	}
	return nil
}
