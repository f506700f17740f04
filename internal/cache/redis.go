package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const processedPrefix = "fscraper:processed:"

// RedisCache handles caching and fast state storage
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. Processed markers expire after ttl;
// zero keeps them forever.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// ProcessedKey is the marker key of a match in a season
func ProcessedKey(season, matchID string) string {
	return processedPrefix + season + ":" + matchID
}

// MarkProcessed records the match and reports whether it was new. A false
// result means another run already handled it.
func (rc *RedisCache) MarkProcessed(ctx context.Context, season, matchID string) (bool, error) {
	return rc.client.SetNX(ctx, ProcessedKey(season, matchID), time.Now().Unix(), rc.ttl).Result()
}

// IsProcessed reports whether the match was marked
func (rc *RedisCache) IsProcessed(ctx context.Context, season, matchID string) (bool, error) {
	n, err := rc.client.Exists(ctx, ProcessedKey(season, matchID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Forget removes the marker so the match is scraped again
func (rc *RedisCache) Forget(ctx context.Context, season, matchID string) error {
	return rc.client.Del(ctx, ProcessedKey(season, matchID)).Err()
}
