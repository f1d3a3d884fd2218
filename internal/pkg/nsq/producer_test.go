package nsq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topic   string
	body    []byte
	err     error
	stopped bool
}

func (f *fakePublisher) Publish(topic string, body []byte) error {
	f.topic = topic
	f.body = body
	return f.err
}

func (f *fakePublisher) Stop() { f.stopped = true }

func TestProducer_Publish(t *testing.T) {
	fake := &fakePublisher{}
	p := &Producer{producer: fake}

	err := p.Publish("auth.otp_verified", map[string]string{"user_id": "u-1"})

	require.NoError(t, err)
	assert.Equal(t, "auth.otp_verified", fake.topic)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(fake.body, &decoded))
	assert.Equal(t, "u-1", decoded["user_id"])
}

func TestProducer_PublishError(t *testing.T) {
	fake := &fakePublisher{err: errors.New("nsqd unavailable")}
	p := &Producer{producer: fake}

	err := p.Publish("auth.otp_verified", struct{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "auth.otp_verified")
}

func TestProducer_PublishMarshalError(t *testing.T) {
	fake := &fakePublisher{}
	p := &Producer{producer: fake}

	err := p.Publish("auth.otp_verified", make(chan int))

	assert.Error(t, err)
	assert.Empty(t, fake.topic)
}

func TestProducer_Stop(t *testing.T) {
	fake := &fakePublisher{}
	p := &Producer{producer: fake}

	p.Stop()

	assert.True(t, fake.stopped)
}

func TestNewProducer_Unreachable(t *testing.T) {
	p, err := NewProducer("127.0.0.1:1")

	assert.Error(t, err)
	assert.Nil(t, p)
}
