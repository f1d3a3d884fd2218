package auth

import (
	"context"

	"github.com/piresc/storefront/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/storefront/services/auth OTPProvider,EventPublisher

// OTPProvider delivers and checks codes through an SMS provider
type OTPProvider interface {
	SendOTP(ctx context.Context, mobile string) (string, error)
	VerifyOTP(ctx context.Context, sessionID, code string) error
	ResendOTP(ctx context.Context, sessionID string) error
}

// EventPublisher emits domain events
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error
	PublishOTPVerified(ctx context.Context, event *models.OTPVerifiedEvent) error
}
