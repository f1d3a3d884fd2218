package gateway

import (
	"fmt"

	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
	gateway_http "github.com/piresc/storefront/services/auth/gateway/http"
)

// NewOTPProvider builds the configured provider, behind a circuit breaker when enabled
func NewOTPProvider(cfg *models.Config, zapLogger *logger.ZapLogger) (auth.OTPProvider, error) {
	var provider auth.OTPProvider
	switch cfg.Provider.Name {
	case constants.ProviderTwoFactor:
		provider = gateway_http.NewTwoFactorClient(cfg.Provider)
	case constants.ProviderLocal:
		logger.Warn("Using local OTP provider, codes are written to the debug log")
		provider = NewLocalProvider()
	default:
		return nil, fmt.Errorf("unsupported otp provider %q", cfg.Provider.Name)
	}

	if cfg.CircuitBreaker.Enabled {
		provider = NewBreakerProvider(provider, cfg.CircuitBreaker, zapLogger)
	}
	return provider, nil
}
