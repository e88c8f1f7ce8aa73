package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin JSON read-through cache over Redis. A nil *Cache (or a
// Cache built over a nil client) is valid and caches nothing, so callers
// never have to branch on whether Redis is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Cache over the given Redis client with a default TTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx := context.Background()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	log.Printf("Redis connected: %s", pong)

	return rdb, nil
}

// Get unmarshals the cached value for key into dest, reporting whether a
// usable entry was found.
func (c *Cache) Get(key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache get failed for %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Cache entry for %s is not valid JSON: %v", key, err)
		return false
	}
	return true
}

// Set stores value under key with the default TTL. Failures are logged
// and otherwise ignored; the cache is best-effort.
func (c *Cache) Set(key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Cache set failed to marshal %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(context.Background(), key, data, c.ttl).Err(); err != nil {
		log.Printf("Cache set failed for %s: %v", key, err)
	}
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(context.Background(), keys...).Err(); err != nil {
		log.Printf("Cache invalidation failed for %v: %v", keys, err)
	}
}
