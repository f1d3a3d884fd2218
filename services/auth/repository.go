package auth

import (
	"context"

	"github.com/piresc/storefront/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/storefront/services/auth RateLimiter,SessionStore,UserRepo

// RateLimiter enforces the daily OTP send quota per mobile
type RateLimiter interface {
	// Allow consumes one unit of today's quota, reporting false once it is spent
	Allow(ctx context.Context, mobile string) (bool, error)
}

// SessionStore tracks the pending OTP session per mobile
type SessionStore interface {
	Put(ctx context.Context, mobile, providerSessionID string) error
	Get(ctx context.Context, mobile string) (*models.OTPSession, error)
	IncrementAttempts(ctx context.Context, mobile string) (int, error)
	Remove(ctx context.Context, mobile string) error
	// Refresh restarts the session's expiry after a code is re-delivered,
	// keeping its attempt count. Fails with ErrSessionNotFound when absent.
	Refresh(ctx context.Context, mobile string) error

	// Attempt atomically charges one verify attempt. It fails with
	// ErrSessionNotFound, or ErrAttemptsExhausted after removing the session.
	Attempt(ctx context.Context, mobile string, maxAttempts int) (*models.OTPSession, error)
	// Consume removes the session only if it still holds providerSessionID
	Consume(ctx context.Context, mobile, providerSessionID string) (bool, error)
}

// UserRepo resolves and creates users by mobile
type UserRepo interface {
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	Create(ctx context.Context, mobile string) (*models.User, error)
}
