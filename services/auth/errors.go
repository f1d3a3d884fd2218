package auth

import "errors"

var (
	ErrSessionNotFound   = errors.New("otp session not found")
	ErrAttemptsExhausted = errors.New("otp attempts exhausted")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")

	// ErrCodeRejected is returned by providers when the code does not match
	ErrCodeRejected = errors.New("otp code rejected")
)
