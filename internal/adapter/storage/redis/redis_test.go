package redis_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	redisstore "crypto-checkout/internal/adapter/storage/redis"
	"crypto-checkout/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newTestOrder(id string) *domain.Order {
	return &domain.Order{
		ID:          id,
		USDSubtotal: decimal.RequireFromString("26.00"),
		FeePct:      domain.CryptoFeePct,
		FeeUSD:      decimal.RequireFromString("1.30"),
		RandomCents: decimal.RequireFromString("0.04"),
		USDTotal:    decimal.RequireFromString("27.34"),
		Coins: map[string]*domain.CoinQuote{
			"btc": {
				Address:         "bc1qexample",
				Rate:            decimal.RequireFromString("67000"),
				Decimals:        8,
				DisplayDecimals: 8,
				AmountSmallest:  big.NewInt(40806),
				StartBalance:    domain.KnownBalance(big.NewInt(100)),
				Status:          domain.QuoteStatusCreated,
			},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderStore_RoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	store := redisstore.NewOrderStore(client, 0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newTestOrder("ord_abc")))

	got, err := store.Get(ctx, "ord_abc")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "ord_abc", got.ID)
	assert.True(t, got.USDTotal.Equal(decimal.RequireFromString("27.34")))

	quote := got.Coins["btc"]
	require.NotNil(t, quote)
	assert.Equal(t, "40806", quote.AmountSmallest.String())
	assert.True(t, quote.StartBalance.Known)
	assert.Equal(t, "100", quote.StartBalance.Amount.String())
	assert.Equal(t, domain.QuoteStatusCreated, quote.Status)
}

func TestOrderStore_GetAbsent(t *testing.T) {
	_, client := newTestClient(t)
	store := redisstore.NewOrderStore(client, 0)

	got, err := store.Get(context.Background(), "ord_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderStore_Update(t *testing.T) {
	_, client := newTestClient(t)
	store := redisstore.NewOrderStore(client, 0)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, newTestOrder("ord_abc")))

	stamp := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	updated, err := store.Update(ctx, "ord_abc", func(o *domain.Order) error {
		o.Coins["btc"].MarkPaid(stamp)
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, err := store.Get(ctx, "ord_abc")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusPaid, got.Coins["btc"].Status)
	require.NotNil(t, got.Coins["btc"].PaidAt)
	assert.True(t, stamp.Equal(*got.Coins["btc"].PaidAt))
}

func TestOrderStore_UpdateAbsent(t *testing.T) {
	_, client := newTestClient(t)
	store := redisstore.NewOrderStore(client, 0)

	updated, err := store.Update(context.Background(), "ord_missing", func(o *domain.Order) error {
		t.Fatal("fn must not run for an absent order")
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestOrderStore_TTL(t *testing.T) {
	mr, client := newTestClient(t)
	store := redisstore.NewOrderStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newTestOrder("ord_ttl")))
	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "ord_ttl")
	require.NoError(t, err)
	assert.Nil(t, got, "order should have expired")
}

func TestRateLimitStore_Allow(t *testing.T) {
	mr, client := newTestClient(t)
	store := redisstore.NewRateLimitStore(client)
	ctx := context.Background()

	t.Run("allows requests within limit", func(t *testing.T) {
		for i := int64(1); i <= 3; i++ {
			result, err := store.Allow(ctx, "1.2.3.4:status", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should be allowed", i)
			assert.Equal(t, 3-i, result.Remaining)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		result, err := store.Allow(ctx, "1.2.3.4:status", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, int64(0), result.Remaining)
	})

	t.Run("different keys are independent", func(t *testing.T) {
		result, err := store.Allow(ctx, "5.6.7.8:status", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("window expires", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)
		result, err := store.Allow(ctx, "1.2.3.4:status", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "new window should reset the counter")
	})
}
