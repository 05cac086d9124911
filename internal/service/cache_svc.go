package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Company scores change on every vote, so they get the shorter
// window; promise responses mostly change on consensus transitions.
const (
	CompanyCacheTTL = 5 * time.Minute
	PromiseCacheTTL = 2 * time.Minute
)

// CacheService provides a Redis cache-aside layer for company and promise
// lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetCompany retrieves a cached company score response. Returns nil if not
// cached or the cache is disabled.
func (c *CacheService) GetCompany(ctx context.Context, companyID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, companyKey(companyID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetCompany stores a company score response in cache.
func (c *CacheService) SetCompany(ctx context.Context, companyID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, companyKey(companyID), b, CompanyCacheTTL).Err()
}

// InvalidateCompany removes a company from cache (called after vote writes
// and sweep recomputes).
func (c *CacheService) InvalidateCompany(ctx context.Context, companyID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, companyKey(companyID)).Err()
}

// GetPromise retrieves a cached promise response. Returns nil if not cached.
func (c *CacheService) GetPromise(ctx context.Context, promiseID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, promiseKey(promiseID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetPromise stores a promise response in cache.
func (c *CacheService) SetPromise(ctx context.Context, promiseID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, promiseKey(promiseID), b, PromiseCacheTTL).Err()
}

// InvalidatePromise removes a promise from cache.
func (c *CacheService) InvalidatePromise(ctx context.Context, promiseID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, promiseKey(promiseID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func companyKey(companyID string) string {
	return fmt.Sprintf("company:%s", companyID)
}

func promiseKey(promiseID string) string {
	return fmt.Sprintf("promise:%s", promiseID)
}
