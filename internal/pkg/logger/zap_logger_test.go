package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)
	return &ZapLogger{Logger: l, sugar: l.Sugar()}, logs
}

func TestNewZapLogger_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "auth.log")

	l, err := NewZapLogger(ZapConfig{Level: "debug", FilePath: path, Service: "auth"}, nil)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, path, l.filePath)
	assert.NotNil(t, l.Sugar())
	assert.FileExists(t, path)
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := NewZapLogger(ZapConfig{Level: "verbose"}, nil)
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestLogHTTPRequest_Levels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{name: "success", status: http.StatusOK, wantLevel: zapcore.InfoLevel, wantMsg: "Request processed"},
		{name: "client error", status: http.StatusTooManyRequests, wantLevel: zapcore.WarnLevel, wantMsg: "Client error"},
		{name: "server error", status: http.StatusInternalServerError, err: errors.New("boom"), wantLevel: zapcore.ErrorLevel, wantMsg: "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := newObservedLogger()

			l.LogHTTPRequest(nil, http.MethodPost, "/auth/send-otp", "127.0.0.1", "anonymous", "req-1", tt.status, 5*time.Millisecond, tt.err)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, int64(tt.status), entry.ContextMap()["status"])
			assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
		})
	}
}

func TestZapEchoMiddleware_LogsStatusOfReturnedError(t *testing.T) {
	l, logs := newObservedLogger()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ZapEchoMiddleware(l)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	})

	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "anonymous", logs.All()[0].ContextMap()["user_id"])
}

func TestMobileField_Masks(t *testing.T) {
	f := Mobile("9876543210")
	assert.Equal(t, "mobile", f.Key)
	assert.Equal(t, "******3210", f.String)

	short := Mobile("123")
	assert.Equal(t, "123", short.String)
}

func TestGlobalLogger(t *testing.T) {
	l, logs := newObservedLogger()
	SetGlobalLogger(l)
	defer SetGlobalLogger(nil)

	Info("hello", String("k", "v"))
	Warn("careful")
	Error("failed", Err(errors.New("x")))

	assert.Equal(t, 3, logs.Len())
	assert.Same(t, l, GetGlobalLogger())
}
