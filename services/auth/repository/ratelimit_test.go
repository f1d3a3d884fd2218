package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/database"
	"github.com/piresc/storefront/services/auth"
)

const testMobile = "9876543210"

// setupMiniredis creates a new miniredis server and a client wrapper connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, &database.RedisClient{Client: client}
}

type clockedLimiter interface {
	auth.RateLimiter
	SetNowFunc(func() time.Time)
}

func rateLimiters(t *testing.T) map[string]clockedLimiter {
	_, redisClient := setupMiniredis(t)
	return map[string]clockedLimiter{
		"memory": NewRateLimitMemoryRepo(5),
		"redis":  NewRateLimitRedisRepo(redisClient, 5),
	}
}

func TestRateLimiter_DailyQuota(t *testing.T) {
	for name, limiter := range rateLimiters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			day := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
			limiter.SetNowFunc(func() time.Time { return day })

			for i := 1; i <= 5; i++ {
				allowed, err := limiter.Allow(ctx, testMobile)
				require.NoError(t, err)
				assert.True(t, allowed, "send %d should be allowed", i)
			}

			allowed, err := limiter.Allow(ctx, testMobile)
			require.NoError(t, err)
			assert.False(t, allowed, "6th send must be rejected")

			// a different identity is independent
			allowed, err = limiter.Allow(ctx, "9123456780")
			require.NoError(t, err)
			assert.True(t, allowed)

			next := day.Add(24 * time.Hour)
			limiter.SetNowFunc(func() time.Time { return next })
			allowed, err = limiter.Allow(ctx, testMobile)
			require.NoError(t, err)
			assert.True(t, allowed, "quota resets on the next UTC day")
		})
	}
}

func TestRateLimiter_UTCBoundary(t *testing.T) {
	for name, limiter := range rateLimiters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ist := time.FixedZone("IST", 5*3600+1800)

			// 23:00 UTC on Apr 10 is already Apr 11 in IST; the window must follow UTC
			late := time.Date(2026, 4, 11, 4, 30, 0, 0, ist)
			limiter.SetNowFunc(func() time.Time { return late })
			for i := 0; i < 5; i++ {
				_, err := limiter.Allow(ctx, testMobile)
				require.NoError(t, err)
			}

			stillSameUTCDay := time.Date(2026, 4, 10, 23, 59, 0, 0, time.UTC)
			limiter.SetNowFunc(func() time.Time { return stillSameUTCDay })
			allowed, err := limiter.Allow(ctx, testMobile)
			require.NoError(t, err)
			assert.False(t, allowed)
		})
	}
}

func TestRateLimitMemoryRepo_RejectionDoesNotMutate(t *testing.T) {
	limiter := NewRateLimitMemoryRepo(1)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, testMobile)
	allowed, _ := limiter.Allow(ctx, testMobile)
	assert.False(t, allowed)

	rec, ok := limiter.Record(testMobile)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Count)
}

func TestRateLimitMemoryRepo_Concurrent(t *testing.T) {
	limiter := NewRateLimitMemoryRepo(5)
	ctx := context.Background()

	var allowedCount int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow(ctx, testMobile); ok {
				atomic.AddInt32(&allowedCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), allowedCount)
}

func TestRateLimitMemoryRepo_Sweep(t *testing.T) {
	limiter := NewRateLimitMemoryRepo(5)
	ctx := context.Background()
	yesterday := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	limiter.SetNowFunc(func() time.Time { return yesterday })
	for i := 0; i < 3; i++ {
		_, _ = limiter.Allow(ctx, fmt.Sprintf("98765432%02d", i))
	}
	limiter.SetNowFunc(func() time.Time { return yesterday.Add(24 * time.Hour) })
	_, _ = limiter.Allow(ctx, testMobile)

	removed := limiter.Sweep(yesterday.Add(24 * time.Hour))

	assert.Equal(t, 3, removed)
	_, ok := limiter.Record(testMobile)
	assert.True(t, ok)
}

func TestRateLimitRedisRepo_KeyExpiresAfterMidnight(t *testing.T) {
	mr, redisClient := setupMiniredis(t)
	limiter := NewRateLimitRedisRepo(redisClient, 5)
	now := time.Date(2026, 4, 10, 23, 0, 0, 0, time.UTC)
	limiter.SetNowFunc(func() time.Time { return now })

	allowed, err := limiter.Allow(context.Background(), testMobile)
	require.NoError(t, err)
	assert.True(t, allowed)

	key := fmt.Sprintf(constants.KeyOTPRateLimit, testMobile)
	assert.Equal(t, time.Hour+time.Minute, mr.TTL(key))
	assert.Equal(t, "1", mr.HGet(key, constants.FieldCount))
	assert.Equal(t, "2026-04-10", mr.HGet(key, constants.FieldWindowDate))
}

func TestRateLimitRedisRepo_ConnectionError(t *testing.T) {
	mr, redisClient := setupMiniredis(t)
	limiter := NewRateLimitRedisRepo(redisClient, 5)
	mr.Close()

	_, err := limiter.Allow(context.Background(), testMobile)
	assert.Error(t, err)
}
