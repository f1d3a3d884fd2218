package usecase

import (
	"fmt"
	"time"
)

// ErrorKind classifies failures of the OTP flow
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindRateLimited       ErrorKind = "rate_limited"
	KindProviderError     ErrorKind = "provider_error"
	KindNoActiveSession   ErrorKind = "no_active_session"
	KindAttemptsExhausted ErrorKind = "attempts_exhausted"
	KindInvalidCode       ErrorKind = "invalid_code"
	KindInternal          ErrorKind = "internal"
)

// Kind sentinels for errors.Is
var (
	ErrInvalidInput      = &AuthError{Kind: KindInvalidInput}
	ErrRateLimited       = &AuthError{Kind: KindRateLimited}
	ErrProviderError     = &AuthError{Kind: KindProviderError}
	ErrNoActiveSession   = &AuthError{Kind: KindNoActiveSession}
	ErrAttemptsExhausted = &AuthError{Kind: KindAttemptsExhausted}
	ErrInvalidCode       = &AuthError{Kind: KindInvalidCode}
	ErrInternal          = &AuthError{Kind: KindInternal}
)

// AuthError is returned by every AuthUC operation. Message is safe to show
// to clients; Err carries the underlying cause for logs.
type AuthError struct {
	Kind    ErrorKind
	Message string

	// AttemptsRemaining is set only for KindInvalidCode
	AttemptsRemaining int
	// RetryAfter is set only for KindRateLimited
	RetryAfter time.Duration
	Details    string

	Err error
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches any AuthError of the same kind
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

func invalidInput(message string) *AuthError {
	return &AuthError{Kind: KindInvalidInput, Message: message}
}

func internalError(err error) *AuthError {
	return &AuthError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

func noActiveSession() *AuthError {
	return &AuthError{Kind: KindNoActiveSession, Message: "No active OTP session, please request a new OTP"}
}
