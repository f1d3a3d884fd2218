package gateway_nsq

import (
	"context"
	"fmt"

	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
)

// Publisher sends a JSON message to a topic; satisfied by *nsq.Producer
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// NSQGateway publishes auth domain events to NSQ
type NSQGateway struct {
	producer Publisher
}

// NewNSQGateway creates an event gateway over producer
func NewNSQGateway(producer Publisher) *NSQGateway {
	return &NSQGateway{producer: producer}
}

// PublishUserRegistered announces a user created during verification
func (g *NSQGateway) PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error {
	if err := g.producer.Publish(constants.TopicUserRegistered, event); err != nil {
		return fmt.Errorf("failed to publish user registered event: %w", err)
	}

	logger.Debug("Published user registered event", logger.String("user_id", event.UserID))
	return nil
}

// PublishOTPVerified announces a successful verification
func (g *NSQGateway) PublishOTPVerified(ctx context.Context, event *models.OTPVerifiedEvent) error {
	if err := g.producer.Publish(constants.TopicOTPVerified, event); err != nil {
		return fmt.Errorf("failed to publish otp verified event: %w", err)
	}

	logger.Debug("Published otp verified event",
		logger.String("user_id", event.UserID),
		logger.Bool("new_user", event.NewUser))
	return nil
}

// NoopGateway drops events; used when NSQ_ADDRESS is empty
type NoopGateway struct{}

// PublishUserRegistered does nothing
func (NoopGateway) PublishUserRegistered(context.Context, *models.UserRegisteredEvent) error {
	return nil
}

// PublishOTPVerified does nothing
func (NoopGateway) PublishOTPVerified(context.Context, *models.OTPVerifiedEvent) error {
	return nil
}
