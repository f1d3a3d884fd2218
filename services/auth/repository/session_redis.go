package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/database"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

const (
	scriptNotFound  = -1
	scriptExhausted = -2
)

// incrementScript returns the new attempt count, or -1 when the session is absent
var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
`)

// attemptScript returns {-1} when absent, {-2} after deleting an exhausted
// session, otherwise {attempts, provider_session_id, created_at}
var attemptScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return {-1}
end
local attempts = tonumber(redis.call('HGET', KEYS[1], ARGV[2]) or '0')
if attempts >= tonumber(ARGV[1]) then
	redis.call('DEL', KEYS[1])
	return {-2}
end
attempts = redis.call('HINCRBY', KEYS[1], ARGV[2], 1)
return {attempts, redis.call('HGET', KEYS[1], ARGV[3]), redis.call('HGET', KEYS[1], ARGV[4])}
`)

// refreshScript restamps created_at and restarts the key TTL; returns 0 when absent
var refreshScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], tonumber(ARGV[3]))
end
return 1
`)

// consumeScript deletes the session only while it holds the given provider session id
var consumeScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], ARGV[2]) == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// SessionRedisRepo stores OTP sessions as Redis hashes that expire after ttl
type SessionRedisRepo struct {
	redisClient *database.RedisClient
	ttl         time.Duration
	now         func() time.Time
}

// NewSessionRedisRepo creates a Redis-backed session store
func NewSessionRedisRepo(redisClient *database.RedisClient, ttl time.Duration) *SessionRedisRepo {
	return &SessionRedisRepo{
		redisClient: redisClient,
		ttl:         ttl,
		now:         time.Now,
	}
}

func sessionKey(mobile string) string {
	return fmt.Sprintf(constants.KeyOTPSession, mobile)
}

// Put creates or replaces the session with a zero attempt count
func (r *SessionRedisRepo) Put(ctx context.Context, mobile, providerSessionID string) error {
	key := sessionKey(mobile)
	_, err := r.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			constants.FieldProviderSessionID, providerSessionID,
			constants.FieldAttempts, 0,
			constants.FieldCreatedAt, r.now().UnixMilli(),
		)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store otp session: %w", err)
	}
	return nil
}

// Get returns the live session
func (r *SessionRedisRepo) Get(ctx context.Context, mobile string) (*models.OTPSession, error) {
	fields, err := r.redisClient.Client.HGetAll(ctx, sessionKey(mobile)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp session: %w", err)
	}
	if len(fields) == 0 {
		return nil, auth.ErrSessionNotFound
	}

	attempts, err := strconv.Atoi(fields[constants.FieldAttempts])
	if err != nil {
		return nil, fmt.Errorf("corrupt otp session attempts: %w", err)
	}
	createdAt, err := parseMillis(fields[constants.FieldCreatedAt])
	if err != nil {
		return nil, err
	}

	return &models.OTPSession{
		Mobile:            mobile,
		ProviderSessionID: fields[constants.FieldProviderSessionID],
		Attempts:          attempts,
		CreatedAt:         createdAt,
	}, nil
}

// IncrementAttempts bumps the attempt counter and returns the new value
func (r *SessionRedisRepo) IncrementAttempts(ctx context.Context, mobile string) (int, error) {
	n, err := incrementScript.Run(ctx, r.redisClient.Client, []string{sessionKey(mobile)},
		constants.FieldAttempts,
	).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	if n == scriptNotFound {
		return 0, auth.ErrSessionNotFound
	}
	return n, nil
}

// Remove deletes the session if present
func (r *SessionRedisRepo) Remove(ctx context.Context, mobile string) error {
	if err := r.redisClient.Delete(ctx, sessionKey(mobile)); err != nil {
		return fmt.Errorf("failed to remove otp session: %w", err)
	}
	return nil
}

// Refresh restarts the session TTL without touching its attempt count
func (r *SessionRedisRepo) Refresh(ctx context.Context, mobile string) error {
	n, err := refreshScript.Run(ctx, r.redisClient.Client, []string{sessionKey(mobile)},
		constants.FieldCreatedAt, strconv.FormatInt(r.now().UnixMilli(), 10), r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to refresh otp session: %w", err)
	}
	if n == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

// Attempt charges one verify attempt in a single script
func (r *SessionRedisRepo) Attempt(ctx context.Context, mobile string, maxAttempts int) (*models.OTPSession, error) {
	res, err := attemptScript.Run(ctx, r.redisClient.Client, []string{sessionKey(mobile)},
		maxAttempts, constants.FieldAttempts, constants.FieldProviderSessionID, constants.FieldCreatedAt,
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to record otp attempt: %w", err)
	}
	if len(res) == 0 {
		return nil, errors.New("empty otp attempt result")
	}

	status, ok := res[0].(int64)
	if !ok {
		return nil, fmt.Errorf("unexpected otp attempt result %T", res[0])
	}
	switch status {
	case scriptNotFound:
		return nil, auth.ErrSessionNotFound
	case scriptExhausted:
		return nil, auth.ErrAttemptsExhausted
	}
	if len(res) < 3 {
		return nil, fmt.Errorf("short otp attempt result: %d values", len(res))
	}

	sid, _ := res[1].(string)
	created, _ := res[2].(string)
	createdAt, err := parseMillis(created)
	if err != nil {
		return nil, err
	}

	return &models.OTPSession{
		Mobile:            mobile,
		ProviderSessionID: sid,
		Attempts:          int(status),
		CreatedAt:         createdAt,
	}, nil
}

// Consume deletes the session only while it still belongs to providerSessionID
func (r *SessionRedisRepo) Consume(ctx context.Context, mobile, providerSessionID string) (bool, error) {
	n, err := consumeScript.Run(ctx, r.redisClient.Client, []string{sessionKey(mobile)},
		providerSessionID, constants.FieldProviderSessionID,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume otp session: %w", err)
	}
	return n == 1, nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt otp session timestamp: %w", err)
	}
	return time.UnixMilli(ms), nil
}
