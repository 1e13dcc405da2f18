package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
)

const (
	keyPrefix = "vn:rates:"
	latestKey = keyPrefix + "latest"
	// A day key outlives its day so late requests around midnight still hit.
	dayTTL = 48 * time.Hour
)

// RedisCache shares rate tables between instances.
type RedisCache struct {
	client redis.Cmdable
}

var _ portsrepo.RateCache = (*RedisCache)(nil)

// NewRedisClient builds a client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func dayKey(day string) string {
	return keyPrefix + day
}

func (c *RedisCache) Get(ctx context.Context, day string) (*domain.RateTable, error) {
	return c.load(ctx, dayKey(day))
}

func (c *RedisCache) Latest(ctx context.Context) (*domain.RateTable, error) {
	return c.load(ctx, latestKey)
}

// Set writes the day key and the latest key in one pipeline.
func (c *RedisCache) Set(ctx context.Context, day string, table *domain.RateTable, _ time.Time) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal rate table: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, dayKey(day), data, dayTTL)
	pipe.Set(ctx, latestKey, data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store rate table: %w", err)
	}
	return nil
}

func (c *RedisCache) load(ctx context.Context, key string) (*domain.RateTable, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, portsrepo.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var table domain.RateTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return &table, nil
}
