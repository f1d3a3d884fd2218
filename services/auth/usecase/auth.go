package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/piresc/storefront/internal/pkg/circuitbreaker"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/internal/utils"
	"github.com/piresc/storefront/services/auth"
)

var _ auth.AuthUC = (*AuthUC)(nil)

// SendOTP charges the daily quota, dispatches a code through the provider and
// records the provider session for mobile, replacing any pending one
func (u *AuthUC) SendOTP(ctx context.Context, mobile string) error {
	normalized, ok := utils.NormalizeMobile(mobile)
	if !ok {
		return invalidInput("Invalid mobile number")
	}

	allowed, err := u.rateLimiter.Allow(ctx, normalized)
	if err != nil {
		logger.Error("Failed to check OTP rate limit", logger.Mobile(normalized), logger.Err(err))
		return internalError(err)
	}
	if !allowed {
		logger.Warn("OTP daily limit reached", logger.Mobile(normalized))
		return &AuthError{
			Kind:       KindRateLimited,
			Message:    "Too many OTP requests, please try again tomorrow",
			RetryAfter: utils.UntilNextUTCDay(u.now()),
		}
	}

	sessionID, err := u.provider.SendOTP(ctx, normalized)
	if err != nil {
		logger.Error("OTP provider failed to send", logger.Mobile(normalized), logger.Err(err))
		return providerError("Failed to send OTP", err)
	}

	if err := u.sessions.Put(ctx, normalized, sessionID); err != nil {
		logger.Error("Failed to store OTP session", logger.Mobile(normalized), logger.Err(err))
		return internalError(err)
	}

	logger.Info("OTP sent", logger.Mobile(normalized))
	return nil
}

// VerifyOTP charges one attempt against the pending session, checks the code
// with the provider and, on a match, consumes the session and issues a token
func (u *AuthUC) VerifyOTP(ctx context.Context, mobile, otp string) (*models.AuthResult, error) {
	if strings.TrimSpace(mobile) == "" || strings.TrimSpace(otp) == "" {
		return nil, invalidInput("Mobile number and OTP are required")
	}
	normalized, ok := utils.NormalizeMobile(mobile)
	if !ok {
		return nil, invalidInput("Invalid mobile number")
	}
	if !utils.IsValidOTP(otp) {
		return nil, invalidInput("Invalid OTP format")
	}

	session, err := u.sessions.Attempt(ctx, normalized, u.maxAttempts)
	switch {
	case errors.Is(err, auth.ErrSessionNotFound):
		return nil, noActiveSession()
	case errors.Is(err, auth.ErrAttemptsExhausted):
		logger.Warn("OTP attempts exhausted", logger.Mobile(normalized))
		return nil, &AuthError{
			Kind:    KindAttemptsExhausted,
			Message: "Maximum OTP attempts exceeded, please request a new OTP",
		}
	case err != nil:
		logger.Error("Failed to record OTP attempt", logger.Mobile(normalized), logger.Err(err))
		return nil, internalError(err)
	}

	if err := u.provider.VerifyOTP(ctx, session.ProviderSessionID, otp); err != nil {
		remaining := u.maxAttempts - session.Attempts
		if remaining < 0 {
			remaining = 0
		}
		logger.Warn("OTP verification failed",
			logger.Mobile(normalized),
			logger.Int("attempts_remaining", remaining),
			logger.Err(err))
		return nil, &AuthError{
			Kind:              KindInvalidCode,
			Message:           "Invalid OTP",
			AttemptsRemaining: remaining,
			Err:               err,
		}
	}

	consumed, err := u.sessions.Consume(ctx, normalized, session.ProviderSessionID)
	if err != nil {
		logger.Error("Failed to consume OTP session", logger.Mobile(normalized), logger.Err(err))
		return nil, internalError(err)
	}
	if !consumed {
		return nil, noActiveSession()
	}

	user, isNewUser, err := u.findOrCreateUser(ctx, normalized)
	if err != nil {
		logger.Error("Failed to resolve user", logger.Mobile(normalized), logger.Err(err))
		return nil, internalError(err)
	}

	token, expiresAt, err := u.tokens.Issue(user)
	if err != nil {
		logger.Error("Failed to issue token", logger.String("user_id", user.ID), logger.Err(err))
		return nil, internalError(err)
	}

	u.publishVerified(ctx, user, isNewUser)

	logger.Info("OTP verified",
		logger.String("user_id", user.ID),
		logger.Bool("new_user", isNewUser))

	return &models.AuthResult{
		IsNewUser: isNewUser,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// ResendOTP asks the provider to deliver the pending code again and restarts
// the session expiry. The attempt counter is left untouched.
func (u *AuthUC) ResendOTP(ctx context.Context, mobile string) error {
	normalized, ok := utils.NormalizeMobile(mobile)
	if !ok {
		return invalidInput("Invalid mobile number")
	}

	session, err := u.sessions.Get(ctx, normalized)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return noActiveSession()
	}
	if err != nil {
		logger.Error("Failed to load OTP session", logger.Mobile(normalized), logger.Err(err))
		return internalError(err)
	}

	if err := u.provider.ResendOTP(ctx, session.ProviderSessionID); err != nil {
		logger.Error("OTP provider failed to resend", logger.Mobile(normalized), logger.Err(err))
		return providerError("Failed to resend OTP", err)
	}

	// the re-delivered code gets a full session lifetime
	if err := u.sessions.Refresh(ctx, normalized); err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return noActiveSession()
		}
		logger.Error("Failed to refresh OTP session", logger.Mobile(normalized), logger.Err(err))
		return internalError(err)
	}

	logger.Info("OTP resent", logger.Mobile(normalized))
	return nil
}

// IntrospectToken reports whether token verifies and what it claims. Claims
// come from an unverified decode and must not be used for authorization.
func (u *AuthUC) IntrospectToken(_ context.Context, token string) (*models.IntrospectResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalidInput("Token is required")
	}

	_, verifyErr := u.tokens.Verify(token)
	resp := &models.IntrospectResponse{
		Success: true,
		Active:  verifyErr == nil,
	}

	claims, err := u.tokens.Decode(token)
	if err != nil {
		return resp, nil
	}

	resp.Claims = &models.TokenClaims{
		ID:     claims.ID,
		Mobile: claims.Mobile,
	}
	if claims.IssuedAt != nil {
		resp.Claims.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		resp.Claims.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return resp, nil
}

func (u *AuthUC) findOrCreateUser(ctx context.Context, mobile string) (*models.User, bool, error) {
	user, err := u.users.FindByMobile(ctx, mobile)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, false, err
	}

	user, err = u.users.Create(ctx, mobile)
	if errors.Is(err, auth.ErrUserExists) {
		// created concurrently by another verification
		user, err = u.users.FindByMobile(ctx, mobile)
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (u *AuthUC) publishVerified(ctx context.Context, user *models.User, isNewUser bool) {
	if u.events == nil {
		return
	}

	at := u.now().UTC()
	if isNewUser {
		event := &models.UserRegisteredEvent{UserID: user.ID, Mobile: user.Mobile, At: at}
		if err := u.events.PublishUserRegistered(ctx, event); err != nil {
			logger.Warn("Failed to publish user registered event",
				logger.String("user_id", user.ID), logger.Err(err))
		}
	}

	event := &models.OTPVerifiedEvent{UserID: user.ID, Mobile: user.Mobile, NewUser: isNewUser, At: at}
	if err := u.events.PublishOTPVerified(ctx, event); err != nil {
		logger.Warn("Failed to publish otp verified event",
			logger.String("user_id", user.ID), logger.Err(err))
	}
}

func providerError(message string, err error) *AuthError {
	authErr := &AuthError{Kind: KindProviderError, Message: message, Err: err}
	if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		authErr.Details = "OTP provider temporarily unavailable"
	}
	return authErr
}
