package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestCacheGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{
		ID:    "p1",
		Slug:  "muslin-onesie",
		Name:  "Muslin Onesie",
		Price: 320000,
	}
	data, _ := json.Marshal(product)
	mr.Set(cacheKey(product.Slug), string(data))

	result, err := cache.Get(context.Background(), "muslin-onesie")
	require.NoError(t, err)
	assert.Equal(t, "p1", result.ID)
	assert.Equal(t, int64(320000), result.Price)
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestCacheGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("broken"), "{not json")

	_, err := cache.Get(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCacheSetThenGet(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{ID: "p2", Slug: "linen-romper", Name: "Linen Romper", Price: 450000}

	err := cache.Set(context.Background(), product.Slug, product)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cacheKey("linen-romper")))

	result, err := cache.Get(context.Background(), "linen-romper")
	require.NoError(t, err)
	assert.Equal(t, "Linen Romper", result.Name)

	// Entry must expire eventually
	ttl := mr.TTL(cacheKey("linen-romper"))
	assert.Greater(t, ttl.Minutes(), 0.0)
}

func TestCacheDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("gone"), "{}")

	err := cache.Delete(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey("gone")))
}
