package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cinemavault/internal/http-api/dto"
)

const movieKeyPrefix = "movies:"

// MovieCache holds the hot anonymous list queries (latest-N, top-rated-N)
// in redis. A nil cache is a valid no-op, so the API keeps working when
// redis is not around.
type MovieCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMovieCache(redisURL, password string, ttl time.Duration) (*MovieCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &MovieCache{client: rdb, ttl: ttl}, nil
}

func LatestKey(count int) string {
	return fmt.Sprintf("%slatest:%d", movieKeyPrefix, count)
}

func TopRatedKey(count int) string {
	return fmt.Sprintf("%stop-rated:%d", movieKeyPrefix, count)
}

// GetList returns the cached list and whether the key was present.
func (c *MovieCache) GetList(ctx context.Context, key string) ([]dto.MovieResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var list []dto.MovieResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// SetList stores the list under the key with the configured TTL, best effort.
func (c *MovieCache) SetList(ctx context.Context, key string, list []dto.MovieResponse) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops every cached movie list. Called on any movie mutation.
func (c *MovieCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, movieKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

func (c *MovieCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
