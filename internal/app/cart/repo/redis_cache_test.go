package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func snapshot() domain.Snapshot {
	return domain.Snapshot{
		ID:      "cart-1",
		Items:   []domain.CartItem{testutil.Item("p1", 2, 500), testutil.Item("p2", 1, 120)},
		Version: 3,
		Coupon: &coupon.Coupon{
			Code:           "EID10",
			DiscountType:   coupon.DiscountPercentage,
			DiscountValue:  money.FromInt(10),
			DiscountAmount: money.FromInt(112),
			Source:         coupon.SourceCode,
		},
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, snapshot()))
	assert.True(t, mr.Exists("cart:cart-1"))

	ttl := mr.TTL("cart:cart-1")
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+20*time.Second)

	got, err := cache.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version)
	require.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].TotalPrice.Equals(money.FromInt(1000)))
	require.NotNil(t, got.Coupon)
	assert.Equal(t, "EID10", got.Coupon.Code)
	assert.True(t, got.Coupon.DiscountAmount.Equals(money.FromInt(112)))
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	got, err := cache.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:bad", "{not json"))

	_, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, snapshot()))

	require.NoError(t, cache.Delete(ctx, "cart-1"))
	assert.False(t, mr.Exists("cart:cart-1"))
	assert.NoError(t, cache.Delete(ctx, "cart-1"), "deleting a missing key is fine")
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "cart-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Error(t, cache.Ping(context.Background()))
}
