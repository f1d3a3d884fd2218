package usecase

import (
	"time"

	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

// AuthUC orchestrates OTP send, verify and resend
type AuthUC struct {
	rateLimiter auth.RateLimiter
	sessions    auth.SessionStore
	users       auth.UserRepo
	provider    auth.OTPProvider
	tokens      auth.TokenIssuer
	events      auth.EventPublisher

	maxAttempts int
	now         func() time.Time
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	cfg *models.Config,
	rateLimiter auth.RateLimiter,
	sessions auth.SessionStore,
	users auth.UserRepo,
	provider auth.OTPProvider,
	tokens auth.TokenIssuer,
	events auth.EventPublisher,
) *AuthUC {
	maxAttempts := cfg.OTP.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &AuthUC{
		rateLimiter: rateLimiter,
		sessions:    sessions,
		users:       users,
		provider:    provider,
		tokens:      tokens,
		events:      events,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}
