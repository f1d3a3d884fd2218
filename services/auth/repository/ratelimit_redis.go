package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/database"
	"github.com/piresc/storefront/internal/utils"
)

// allowScript resets the counter on a new UTC day, otherwise increments it
// while below the limit. Returns 1 when allowed.
var allowScript = redis.NewScript(`
local date = redis.call('HGET', KEYS[1], ARGV[4])
if date ~= ARGV[1] then
	redis.call('HSET', KEYS[1], ARGV[5], '1', ARGV[4], ARGV[1])
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[3]))
	return 1
end
local count = tonumber(redis.call('HGET', KEYS[1], ARGV[5]) or '0')
if count < tonumber(ARGV[2]) then
	redis.call('HINCRBY', KEYS[1], ARGV[5], 1)
	return 1
end
return 0
`)

// RateLimitRedisRepo keeps daily OTP counters in Redis, shared across instances
type RateLimitRedisRepo struct {
	redisClient *database.RedisClient
	maxPerDay   int
	now         func() time.Time
}

// NewRateLimitRedisRepo creates a Redis-backed rate limiter
func NewRateLimitRedisRepo(redisClient *database.RedisClient, maxPerDay int) *RateLimitRedisRepo {
	return &RateLimitRedisRepo{
		redisClient: redisClient,
		maxPerDay:   maxPerDay,
		now:         time.Now,
	}
}

// SetNowFunc replaces the clock
func (r *RateLimitRedisRepo) SetNowFunc(now func() time.Time) {
	r.now = now
}

// Allow counts a send against today's UTC quota
func (r *RateLimitRedisRepo) Allow(ctx context.Context, mobile string) (bool, error) {
	now := r.now().UTC()
	key := fmt.Sprintf(constants.KeyOTPRateLimit, mobile)

	// keep the key a minute past midnight so a late request still sees today's count
	ttl := int64(utils.UntilNextUTCDay(now).Seconds()) + 60

	allowed, err := allowScript.Run(ctx, r.redisClient.Client, []string{key},
		now.Format(dateLayout), r.maxPerDay, ttl,
		constants.FieldWindowDate, constants.FieldCount,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}

	return allowed == 1, nil
}
