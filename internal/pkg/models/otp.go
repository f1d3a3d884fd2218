package models

import (
	"time"
)

// OTPSession tracks an in-flight verification for one mobile number.
// ProviderSessionID correlates the session with the SMS provider.
type OTPSession struct {
	Mobile            string    `json:"mobile"`
	ProviderSessionID string    `json:"provider_session_id"`
	Attempts          int       `json:"attempts"`
	CreatedAt         time.Time `json:"created_at"`
}

// RateLimitRecord counts OTP requests for one mobile number within a UTC calendar day
type RateLimitRecord struct {
	Mobile     string `json:"mobile"`
	Count      int    `json:"count"`
	WindowDate string `json:"window_date"` // YYYY-MM-DD, UTC
}

// SendOTPRequest represents a request to send or resend an OTP
type SendOTPRequest struct {
	Mobile string `json:"mobile"`
}

// VerifyOTPRequest represents a request to verify an OTP
type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// AuthResult is returned by a successful verification
type AuthResult struct {
	IsNewUser bool
	Token     string
	ExpiresAt time.Time
	User      *User
}

// VerifyOTPResponse is the wire form of a successful verification
type VerifyOTPResponse struct {
	Success   bool         `json:"success"`
	IsNewUser bool         `json:"isNewUser"`
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
}

// IntrospectRequest carries a bearer token to inspect
type IntrospectRequest struct {
	Token string `json:"token"`
}

// IntrospectResponse reports whether a token is currently valid and what it claims
type IntrospectResponse struct {
	Success bool         `json:"success"`
	Active  bool         `json:"active"`
	Claims  *TokenClaims `json:"claims,omitempty"`
}

// TokenClaims is the wire form of session token claims
type TokenClaims struct {
	ID        string `json:"id"`
	Mobile    string `json:"mobile"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// MeResponse describes the bearer of a verified session token
type MeResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Mobile    string `json:"mobile"`
	ExpiresAt int64  `json:"expiresAt"`
}
