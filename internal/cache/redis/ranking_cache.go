package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/observability"
)

const keyPrefix = "valuerank:ranking"

// RankingCache caches computed rankings in Redis, keyed by
// (category, mode). Writes to the catalog invalidate the whole
// keyspace; with six categories and three modes there is nothing to
// gain from finer-grained invalidation.
type RankingCache struct {
	client *redis.Client
}

// NewRankingCache creates a new Redis-backed ranking cache.
func NewRankingCache(client *redis.Client) *RankingCache {
	return &RankingCache{client: client}
}

func cacheKey(category domain.Category, mode domain.Mode) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, category, mode)
}

// Get retrieves a cached ranking, or domain.ErrCacheMiss.
func (c *RankingCache) Get(ctx context.Context, category domain.Category, mode domain.Mode) (*domain.Ranking, error) {
	data, err := c.client.Get(ctx, cacheKey(category, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var ranking domain.Ranking
	if err := json.Unmarshal(data, &ranking); err != nil {
		return nil, fmt.Errorf("failed to decode cached ranking: %w", err)
	}

	return &ranking, nil
}

// Set stores a ranking under its (category, mode) key.
func (c *RankingCache) Set(
	ctx context.Context,
	category domain.Category,
	mode domain.Mode,
	ranking *domain.Ranking,
	ttl time.Duration,
) error {
	data, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(category, mode), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

// Invalidate drops every cached ranking. Called after any model or
// benchmark write so stale scores never outlive the data they came from.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	logger := observability.FromContext(ctx)

	iter := c.client.Scan(ctx, 0, keyPrefix+":*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidation failed: %w", err)
	}

	logger.Info("ranking cache invalidated", observability.Int("keys", len(keys)))
	return nil
}
