package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/middleware"
	nrpkg "github.com/piresc/storefront/internal/pkg/newrelic"
	"github.com/piresc/storefront/services/auth/handler/http"
)

// Handler coordinates the protocol handlers of the auth service
type Handler struct {
	authHandler *http.AuthHandler
	verifier    middleware.TokenVerifier
}

// NewHandler creates and initializes all handlers
func NewHandler(authHandler *http.AuthHandler, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		authHandler: authHandler,
		verifier:    verifier,
	}
}

// RegisterRoutes registers the auth routes on e
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes
	authGroup := e.Group("/auth")
	authGroup.POST("/send-otp", nrpkg.TraceHandler("auth/send-otp", h.authHandler.SendOTP))
	authGroup.POST("/verify-otp", nrpkg.TraceHandler("auth/verify-otp", h.authHandler.VerifyOTP))
	authGroup.POST("/resend-otp", nrpkg.TraceHandler("auth/resend-otp", h.authHandler.ResendOTP))
	authGroup.POST("/token/introspect", nrpkg.TraceHandler("auth/token/introspect", h.authHandler.Introspect))

	// Protected routes
	protected := authGroup.Group("", middleware.BearerAuth(h.verifier))
	protected.GET("/me", nrpkg.TraceHandler("auth/me", h.authHandler.Me))
}
