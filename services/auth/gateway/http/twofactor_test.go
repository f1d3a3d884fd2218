package gateway_http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *TwoFactorClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTwoFactorClient(models.ProviderConfig{
		BaseURL: server.URL + "/API/V1",
		APIKey:  "test-key",
		Timeout: time.Second,
	})
}

func TestTwoFactorClient_SendOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/API/V1/test-key/SMS/919876543210/AUTOGEN", r.URL.Path)
		_, _ = w.Write([]byte(`{"Status":"Success","Details":"sid-abc"}`))
	})

	sid, err := client.SendOTP(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.Equal(t, "sid-abc", sid)
}

func TestTwoFactorClient_SendOTP_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "error status", status: http.StatusOK, body: `{"Status":"Error","Details":"Invalid API Key"}`, wantMsg: "Invalid API Key"},
		{name: "server error", status: http.StatusBadGateway, body: `{}`, wantMsg: "provider unavailable"},
		{name: "empty session", status: http.StatusOK, body: `{"Status":"Success"}`, wantMsg: "no session id"},
		{name: "non json", status: http.StatusOK, body: `<html></html>`, wantMsg: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			sid, err := client.SendOTP(context.Background(), "9876543210")

			assert.Empty(t, sid)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTwoFactorClient_VerifyOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/API/V1/test-key/SMS/VERIFY/sid-abc/123456" {
			_, _ = w.Write([]byte(`{"Status":"Success","Details":"OTP Matched"}`))
			return
		}
		_, _ = w.Write([]byte(`{"Status":"Error","Details":"OTP Mismatch"}`))
	})

	assert.NoError(t, client.VerifyOTP(context.Background(), "sid-abc", "123456"))

	err := client.VerifyOTP(context.Background(), "sid-abc", "000000")
	assert.ErrorIs(t, err, auth.ErrCodeRejected)
}

func TestTwoFactorClient_VerifyOTP_Unavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := client.VerifyOTP(context.Background(), "sid-abc", "123456")

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrCodeRejected)
}

func TestTwoFactorClient_ResendOTP(t *testing.T) {
	var called string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = r.URL.Path
		_, _ = w.Write([]byte(`{"Status":"Success","Details":"sid-abc"}`))
	})

	require.NoError(t, client.ResendOTP(context.Background(), "sid-abc"))
	assert.Equal(t, "/API/V1/test-key/SMS/RESEND/sid-abc", called)
}

func TestTwoFactorClient_VerifyOTP_RejectionKinds(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantRejected bool
	}{
		{name: "mismatch", status: http.StatusOK, body: `{"Status":"Error","Details":"OTP Mismatch"}`, wantRejected: true},
		{name: "expired", status: http.StatusOK, body: `{"Status":"Error","Details":"OTP Expired"}`, wantRejected: true},
		{name: "bad api key", status: http.StatusOK, body: `{"Status":"Error","Details":"Invalid API Key"}`},
		{name: "malformed request", status: http.StatusBadRequest, body: `{"Status":"Error","Details":"Invalid Session ID"}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"Status":"Error","Details":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.VerifyOTP(context.Background(), "sid-abc", "123456")

			require.Error(t, err)
			if tt.wantRejected {
				assert.ErrorIs(t, err, auth.ErrCodeRejected)
			} else {
				assert.NotErrorIs(t, err, auth.ErrCodeRejected)
				assert.ErrorIs(t, err, ErrProviderRejected)
			}
		})
	}
}
