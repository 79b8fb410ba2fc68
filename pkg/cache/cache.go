// Package cache is a nil-safe Redis wrapper. When Redis is unreachable the
// helpers degrade to no-ops so the API keeps serving from the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pedalpoint/bikeshop/config"
	"github.com/pedalpoint/bikeshop/pkg/metrics"
)

// scanBatch is the COUNT hint for SCAN during pattern invalidation.
const scanBatch = 200

var (
	client *redis.Client
	ctx    = context.Background()
)

// Connect initialises the Redis client and verifies it with a ping. On
// failure the package stays in degraded mode and every helper no-ops.
func Connect() error {
	c := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := c.Ping(ctx).Err(); err != nil {
		client = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	client = c
	return nil
}

// Get unmarshals the cached value at key into dest. Reports a hit; misses,
// decode failures and degraded mode all read as false.
func Get(key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		err = json.Unmarshal(raw, dest)
	}
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, data, ttl).Err()
}

// Del removes the given keys.
func Del(keys ...string) error {
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

// Forget removes every key matching pattern (e.g. "products:*"). Used to
// invalidate listing caches after catalog writes.
func Forget(pattern string) error {
	if client == nil {
		return nil
	}
	iter := client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return Del(keys...)
}
