package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"github.com/redis/go-redis/v9"
)

const categoriesKey = "trivia:categories"

// CategoryCache holds the full category list. Categories are only written by
// seeding, so a TTL is the only invalidation.
type CategoryCache interface {
	Get(ctx context.Context) ([]trivia.Category, bool, error)
	Set(ctx context.Context, cats []trivia.Category) error
}

type RedisCategoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCategoryCache(rdb *redis.Client, ttl time.Duration) *RedisCategoryCache {
	return &RedisCategoryCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]trivia.Category, bool, error) {
	raw, err := c.rdb.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get categories: %w", err)
	}

	var cats []trivia.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, false, fmt.Errorf("decode cached categories: %w", err)
	}
	return cats, true, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, cats []trivia.Category) error {
	raw, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories: %w", err)
	}
	return nil
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
