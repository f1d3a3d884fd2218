package auth

import (
	"context"
	"time"

	"github.com/piresc/storefront/internal/pkg/jwt"
	"github.com/piresc/storefront/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/storefront/services/auth AuthUC,TokenIssuer

// AuthUC is the OTP authentication flow
type AuthUC interface {
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) (*models.AuthResult, error)
	ResendOTP(ctx context.Context, mobile string) error

	// token debugging
	IntrospectToken(ctx context.Context, token string) (*models.IntrospectResponse, error)
}

// TokenIssuer mints and validates session tokens
type TokenIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
	Verify(token string) (*jwt.Claims, error)
	Decode(token string) (*jwt.Claims, error)
}
