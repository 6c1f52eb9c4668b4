package redis

import (
	"context"
	"testing"
	"time"

	"escrow-relay/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardTransfer = "0x1111111111111111111111111111111111111111111111111111111111111111"

func TestClaimGuard_SecondAcquireFails(t *testing.T) {
	s := miniredis.RunT(t)
	guard := NewClaimGuard(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	token, ok, err := guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	second, ok, err := guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "guard is still held")
	assert.Empty(t, second)

	stored, err := s.Get("claim:" + guardTransfer)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestClaimGuard_ReleaseAllowsNextClaim(t *testing.T) {
	s := miniredis.RunT(t)
	guard := NewClaimGuard(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	token, _, err := guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	require.NoError(t, guard.Release(ctx, guardTransfer, token))

	_, ok, err := guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClaimGuard_StaleReleaseKeepsNewerHolder(t *testing.T) {
	s := miniredis.RunT(t)
	guard := NewClaimGuard(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	stale, _, err := guard.Acquire(ctx, guardTransfer, 5*time.Second)
	require.NoError(t, err)

	s.FastForward(6 * time.Second)

	current, ok, err := guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, guard.Release(ctx, guardTransfer, stale))

	stored, err := s.Get("claim:" + guardTransfer)
	require.NoError(t, err)
	assert.Equal(t, current, stored, "stale release must not drop the newer guard")

	_, ok, err = guard.Acquire(ctx, guardTransfer, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClaimGuard_ExpiresAfterTTL(t *testing.T) {
	s := miniredis.RunT(t)
	guard := NewClaimGuard(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	_, _, err := guard.Acquire(ctx, guardTransfer, 5*time.Second)
	require.NoError(t, err)

	s.FastForward(6 * time.Second)

	_, ok, err := guard.Acquire(ctx, guardTransfer, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired guard should be acquirable")
}

func TestClaimGuard_RedisDown(t *testing.T) {
	s := miniredis.RunT(t)
	guard := NewClaimGuard(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	s.Close()

	_, _, err := guard.Acquire(context.Background(), guardTransfer, time.Minute)
	assert.Error(t, err)
}

func TestClaimResultCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewClaimResultCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	result, err := cache.Get(ctx, guardTransfer)
	require.NoError(t, err)
	assert.Nil(t, result)

	want := &domain.ClaimRecord{
		Action: domain.ClaimActionToPayoutTreasury,
		Result: domain.RelayerTxResult{
			TxHash: "0x9999999999999999999999999999999999999999999999999999999999999999",
			Mode:   domain.RelayerModeOnchain,
		},
	}
	require.NoError(t, cache.Set(ctx, guardTransfer, want, 24*time.Hour))

	result, err = cache.Get(ctx, guardTransfer)
	require.NoError(t, err)
	assert.Equal(t, want, result)
}

func TestClaimResultCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewClaimResultCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, guardTransfer, &domain.ClaimRecord{
		Action: domain.ClaimActionToWallet,
		Result: domain.RelayerTxResult{TxHash: "0x01", Mode: domain.RelayerModeOnchain},
	}, time.Second))

	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, guardTransfer)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestClaimResultCache_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewClaimResultCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	require.NoError(t, s.Set("claim-result:"+guardTransfer, "not-json"))

	_, err := cache.Get(context.Background(), guardTransfer)
	assert.Error(t, err)
}
