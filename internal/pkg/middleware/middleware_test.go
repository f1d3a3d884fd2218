package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/constants"
	jwtpkg "github.com/piresc/storefront/internal/pkg/jwt"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier struct {
	claims *jwtpkg.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(token string) (*jwtpkg.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generates id when absent", incoming: ""},
		{name: "propagates caller id", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(RequestIDMiddleware())

			var seen string
			e.GET("/", func(c echo.Context) error {
				seen = GetRequestID(c)
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			}
		})
	}
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zl := &logger.ZapLogger{Logger: zap.New(core)}

	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.Use(PanicRecoveryWithZapMiddleware(zl))
	e.GET("/boom", func(c echo.Context) error {
		panic("something broke")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	entries := logs.FilterMessage("Panic recovered during request processing").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "something broke", fields["panic_value"])
	assert.Equal(t, "/boom", fields["path"])
	assert.NotEmpty(t, fields["stack_trace"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestPanicRecovery_PassesThroughErrors(t *testing.T) {
	e := echo.New()
	e.Use(PanicRecoveryWithZapMiddleware(nil))
	e.GET("/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func newProtectedServer(verifier TokenVerifier) *echo.Echo {
	e := echo.New()
	g := e.Group("/auth", BearerAuth(verifier))
	g.GET("/me", func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id":      claims.ID,
			"user_id": c.Get(constants.ContextKeyUserID),
			"mobile":  c.Get(constants.ContextKeyMobile),
		})
	})
	return e
}

func TestBearerAuth_ValidToken(t *testing.T) {
	verifier := &stubVerifier{claims: &jwtpkg.Claims{ID: "user-1", Mobile: "9876543210"}}
	e := newProtectedServer(verifier)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "good-token", verifier.got)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "9876543210", body["mobile"])
}

func TestBearerAuth_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{name: "missing header", header: "", wantMessage: "Authorization header is required"},
		{name: "invalid token", header: "Bearer bad-token", wantMessage: "Invalid token"},
		{name: "wrong scheme", header: "Basic abc", wantMessage: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newProtectedServer(&stubVerifier{err: errors.New("invalid token")})

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}
