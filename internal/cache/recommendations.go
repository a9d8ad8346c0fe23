// Package cache provides a Redis-backed cache for friend recommendation
// results. Recommendations are pure reads over the friendship graph, so a
// short TTL plus invalidation on friendship writes keeps them fresh without
// re-running the two-hop traversal on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"social-graph/pkg/logger"
)

// keyPrefix namespaces recommendation keys in Redis
const keyPrefix = "recommendations:"

// RecommendationCache caches per-user recommendation lists as JSON with a TTL.
// Cache failures are logged and treated as misses; they never fail a request.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a recommendation cache around an existing Redis client
func New(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
		logger: logger.Get(),
	}
}

// Key returns the Redis key holding a user's cached recommendations
func Key(user string) string {
	return keyPrefix + user
}

// Get returns the cached recommendations for a user and whether they were present
func (c *RecommendationCache) Get(ctx context.Context, user string) ([]string, bool) {
	payload, err := c.client.Get(ctx, Key(user)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Recommendation cache read failed", zap.String("user", user), zap.Error(err))
		}
		return nil, false
	}

	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		c.logger.Warn("Recommendation cache entry corrupt", zap.String("user", user), zap.Error(err))
		return nil, false
	}
	return names, true
}

// Set stores a user's recommendations for the configured TTL
func (c *RecommendationCache) Set(ctx context.Context, user string, names []string) {
	payload, err := json.Marshal(names)
	if err != nil {
		c.logger.Warn("Recommendation cache encode failed", zap.String("user", user), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Key(user), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Recommendation cache write failed", zap.String("user", user), zap.Error(err))
	}
}

// Invalidate drops the cached recommendations of the given users. Called
// after friendship mutations, since accepting or removing a friendship
// changes the two-hop neighborhood of both endpoints.
func (c *RecommendationCache) Invalidate(ctx context.Context, users ...string) {
	if len(users) == 0 {
		return
	}
	keys := make([]string, len(users))
	for i, user := range users {
		keys[i] = Key(user)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Recommendation cache invalidation failed", zap.Strings("users", users), zap.Error(err))
	}
}
