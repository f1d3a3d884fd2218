package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("upstream failed")

func newTestBreaker(threshold uint32) (*CircuitBreaker, *time.Time) {
	config := DefaultConfig("otp-provider")
	config.FailureThreshold = threshold
	config.Timeout = time.Minute

	cb := New(config, logger.NewNopLogger())
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }
	cb.expiry = now.Add(config.Interval)
	return cb, &now
}

func fail(context.Context) error    { return errUpstream }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errUpstream)
	}

	assert.Equal(t, StateOpen, cb.State())

	calls := 0
	err := cb.Execute(ctx, func(context.Context) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.Zero(t, calls)
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(2)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	assert.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb, now := newTestBreaker(1)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	assert.Equal(t, StateOpen, cb.State())

	*now = now.Add(time.Minute + time.Second)

	assert.NoError(t, cb.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, now := newTestBreaker(1)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	*now = now.Add(2 * time.Minute)

	assert.ErrorIs(t, cb.Execute(ctx, fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	config := DefaultConfig("otp-provider")
	config.FailureThreshold = 1
	config.IsFailure = func(err error) bool { return err != nil && !errors.Is(err, context.Canceled) }
	cb := New(config, nil)

	_ = cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	config := DefaultConfig("otp-provider")
	config.FailureThreshold = 1
	config.OnStateChange = func(name string, from, to State) {
		transitions = append(transitions, name+":"+from.String()+"->"+to.String())
	}
	cb := New(config, logger.NewNopLogger())

	_ = cb.Execute(context.Background(), fail)

	assert.Equal(t, []string{"otp-provider:CLOSED->OPEN"}, transitions)
}

func TestConfigFromModel(t *testing.T) {
	config := ConfigFromModel("otp-provider", models.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 7,
		Timeout:          15 * time.Second,
	})

	assert.Equal(t, "otp-provider", config.Name)
	assert.Equal(t, uint32(7), config.FailureThreshold)
	assert.Equal(t, 15*time.Second, config.Timeout)
	assert.Equal(t, 30*time.Second, config.Interval)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
