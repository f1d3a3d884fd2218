package gateway_nsq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

type recordingPublisher struct {
	topics   []string
	messages []interface{}
	err      error
}

func (r *recordingPublisher) Publish(topic string, message interface{}) error {
	r.topics = append(r.topics, topic)
	r.messages = append(r.messages, message)
	return r.err
}

var (
	_ auth.EventPublisher = (*NSQGateway)(nil)
	_ auth.EventPublisher = NoopGateway{}
)

func TestNSQGateway_PublishesToTopics(t *testing.T) {
	pub := &recordingPublisher{}
	gw := NewNSQGateway(pub)
	ctx := context.Background()
	at := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	registered := &models.UserRegisteredEvent{UserID: "u-1", Mobile: "9876543210", At: at}
	verified := &models.OTPVerifiedEvent{UserID: "u-1", Mobile: "9876543210", NewUser: true, At: at}

	require.NoError(t, gw.PublishUserRegistered(ctx, registered))
	require.NoError(t, gw.PublishOTPVerified(ctx, verified))

	assert.Equal(t, []string{constants.TopicUserRegistered, constants.TopicOTPVerified}, pub.topics)
	assert.Same(t, registered, pub.messages[0])
	assert.Same(t, verified, pub.messages[1])
}

func TestNSQGateway_PublishError(t *testing.T) {
	gw := NewNSQGateway(&recordingPublisher{err: errors.New("nsqd down")})

	err := gw.PublishOTPVerified(context.Background(), &models.OTPVerifiedEvent{UserID: "u-1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nsqd down")
}

func TestNoopGateway(t *testing.T) {
	var gw NoopGateway
	assert.NoError(t, gw.PublishUserRegistered(context.Background(), &models.UserRegisteredEvent{}))
	assert.NoError(t, gw.PublishOTPVerified(context.Background(), &models.OTPVerifiedEvent{}))
}
