package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
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

func testCart(buyerID int64) *domain.Cart {
	return &domain.Cart{
		BuyerID: buyerID,
		Items: []domain.CartLine{
			{ID: 1, BuyerID: buyerID, ProductID: 10, Kind: domain.ProductKindCrop, Quantity: 2},
			{ID: 2, BuyerID: buyerID, ProductID: 20, Kind: domain.ProductKindShop, Quantity: 1},
		},
	}
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := testCart(123)

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(123), string(cartJSON))

	result, err := cache.Get(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, int64(123), result.BuyerID)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domain.ProductKindShop, result.Items[1].Kind)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	jsonCart, err := json.Marshal(testCart(123))
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey(123), string(jsonCart[0:10])))

	_, cacheError := cache.Get(context.Background(), 123)
	require.ErrorContains(t, cacheError, "unmarshal cart failed")
}

func TestSet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := cache.Set(context.Background(), 456, testCart(456))
	require.NoError(t, err)

	stored, e2 := mr.Get(cacheKey(456))
	require.NoError(t, e2)
	assert.NotEmpty(t, stored)

	var storedCart domain.Cart
	require.NoError(t, json.Unmarshal([]byte(stored), &storedCart))
	assert.Equal(t, int64(456), storedCart.BuyerID)
	assert.Len(t, storedCart.Items, 2)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := cache.Set(context.Background(), 789, &domain.Cart{BuyerID: 789})
	require.NoError(t, err)

	// Check that TTL was set (miniredis tracks TTL)
	ttl := mr.TTL(cacheKey(789))
	assert.True(t, ttl >= 15*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl < 20*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cartJSON, _ := json.Marshal(testCart(999))
	mr.Set(cacheKey(999), string(cartJSON))
	assert.True(t, mr.Exists(cacheKey(999)))

	err := cache.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey(999)))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	// Deleting non-existent key should not error
	err := cache.Delete(context.Background(), 404)
	assert.NoError(t, err)
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "cart:123", cacheKey(123))
}
