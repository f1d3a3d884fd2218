package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{NewRelic: models.NewRelicConfig{Enabled: false, LicenseKey: "abc"}}
	assert.Nil(t, InitNewRelic(cfg))

	cfg = &models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}
	assert.Nil(t, InitNewRelic(cfg))
}

func TestShutdown_NilApp(t *testing.T) {
	assert.NotPanics(t, func() { Shutdown(nil, 0) })
}

func TestInstrumentHTTPRequest_WithoutTransaction(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://provider.test/send", nil)
	want := &http.Response{StatusCode: http.StatusOK}

	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return want, nil
	})

	require.NoError(t, err)
	assert.Same(t, want, resp)
}

func TestWithSegment_WithoutTransaction(t *testing.T) {
	sentinel := errors.New("boom")

	err := WithSegment(context.Background(), "provider.send", func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	val, err := WithSegmentAndReturn(context.Background(), "provider.send", func() (string, error) {
		return "sid-1", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "sid-1", val)
}

func TestMiddlewareAndTraceHandler_NilApp(t *testing.T) {
	e := echo.New()
	e.Use(Middleware(nil))
	e.GET("/ping", TraceHandler("ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}
