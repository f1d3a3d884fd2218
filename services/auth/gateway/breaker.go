package gateway

import (
	"context"
	"errors"

	"github.com/piresc/storefront/internal/pkg/circuitbreaker"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
	nrpkg "github.com/piresc/storefront/internal/pkg/newrelic"
	"github.com/piresc/storefront/services/auth"
)

// BreakerProvider guards an OTP provider with a circuit breaker. A rejected
// code is a normal answer and does not count as a failure.
type BreakerProvider struct {
	next    auth.OTPProvider
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a breaker configured from cfg
func NewBreakerProvider(next auth.OTPProvider, cfg models.CircuitBreakerConfig, zapLogger *logger.ZapLogger) *BreakerProvider {
	config := circuitbreaker.ConfigFromModel("otp-provider", cfg)
	config.IsFailure = func(err error) bool {
		return err != nil &&
			!errors.Is(err, auth.ErrCodeRejected) &&
			!errors.Is(err, context.Canceled)
	}

	return &BreakerProvider{
		next:    next,
		breaker: circuitbreaker.New(config, zapLogger),
	}
}

// SendOTP forwards to the wrapped provider unless the breaker is open
func (p *BreakerProvider) SendOTP(ctx context.Context, mobile string) (string, error) {
	var sessionID string
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		sessionID, err = nrpkg.WithSegmentAndReturn(ctx, "otp-provider/send", func() (string, error) {
			return p.next.SendOTP(ctx, mobile)
		})
		return err
	})
	return sessionID, err
}

// VerifyOTP forwards to the wrapped provider unless the breaker is open
func (p *BreakerProvider) VerifyOTP(ctx context.Context, sessionID, code string) error {
	return p.breaker.Execute(ctx, func(ctx context.Context) error {
		return nrpkg.WithSegment(ctx, "otp-provider/verify", func() error {
			return p.next.VerifyOTP(ctx, sessionID, code)
		})
	})
}

// ResendOTP forwards to the wrapped provider unless the breaker is open
func (p *BreakerProvider) ResendOTP(ctx context.Context, sessionID string) error {
	return p.breaker.Execute(ctx, func(ctx context.Context) error {
		return nrpkg.WithSegment(ctx, "otp-provider/resend", func() error {
			return p.next.ResendOTP(ctx, sessionID)
		})
	})
}

// State exposes the breaker state
func (p *BreakerProvider) State() circuitbreaker.State {
	return p.breaker.State()
}
