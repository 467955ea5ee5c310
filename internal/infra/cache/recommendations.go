package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache stores recommendation pools as JSON blobs with a TTL.
// It backs usecase.ProductListCache; every error is reported upward and
// treated as a miss there.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl}
}

// NewRedisClient parses the URL and verifies connectivity once at startup.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *RecommendationCache) GetProducts(ctx context.Context, key string) ([]usecase.ProductView, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []usecase.ProductView
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RecommendationCache) SetProducts(ctx context.Context, key string, items []usecase.ProductView) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
