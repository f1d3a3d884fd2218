package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError_IsMatchesKind(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &AuthError{Kind: KindInvalidCode, Message: "Invalid OTP", AttemptsRemaining: 1, Err: cause})

	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)

	var ae *AuthError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, 1, ae.AttemptsRemaining)
}

func TestAuthError_Error(t *testing.T) {
	assert.Equal(t, "invalid_input", ErrInvalidInput.Error())
	assert.Equal(t, "Invalid OTP", (&AuthError{Kind: KindInvalidCode, Message: "Invalid OTP"}).Error())
	assert.Equal(t, "Internal server error: boom", internalError(errors.New("boom")).Error())
}
