package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "recommendations:Ann", Key("Ann"))
}

// Integration tests require a running Redis instance.
// Set REDIS_ADDR to override the default localhost:6379.

func createTestClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecommendationCache_RoundTrip(t *testing.T) {
	client := createTestClient(t)
	c := New(client, time.Minute)
	ctx := context.Background()
	user := fmt.Sprintf("cache-test-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(ctx, Key(user)) })

	_, ok := c.Get(ctx, user)
	assert.False(t, ok, "expected miss before Set")

	want := []string{"Bob", "Carol"}
	c.Set(ctx, user, want)

	got, ok := c.Get(ctx, user)
	require.True(t, ok, "expected hit after Set")
	assert.Equal(t, want, got)
}

func TestRecommendationCache_EmptyListIsCached(t *testing.T) {
	client := createTestClient(t)
	c := New(client, time.Minute)
	ctx := context.Background()
	user := fmt.Sprintf("cache-test-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(ctx, Key(user)) })

	c.Set(ctx, user, []string{})

	got, ok := c.Get(ctx, user)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestRecommendationCache_Invalidate(t *testing.T) {
	client := createTestClient(t)
	c := New(client, time.Minute)
	ctx := context.Background()
	user1 := fmt.Sprintf("cache-test-a-%d", time.Now().UnixNano())
	user2 := fmt.Sprintf("cache-test-b-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(ctx, Key(user1), Key(user2)) })

	c.Set(ctx, user1, []string{"Bob"})
	c.Set(ctx, user2, []string{"Ann"})

	c.Invalidate(ctx, user1, user2)

	_, ok := c.Get(ctx, user1)
	assert.False(t, ok)
	_, ok = c.Get(ctx, user2)
	assert.False(t, ok)
}
