package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/storefront/internal/pkg/constants"
	"github.com/piresc/storefront/internal/pkg/jwt"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/spf13/viper"
)

var v = newViper()

func newViper() *viper.Viper {
	vp := viper.New()
	vp.AutomaticEnv()
	return vp
}

// InitConfig loads configuration from the given env file (local only) and the process environment
func InitConfig(configPath string) *models.Config {
	v = newViper()

	local := GetEnv("APP_ENV", "local")
	if local == "local" && configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "storefront-auth")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "development")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8080)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 15)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 15)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Store config
	configs.Store.Backend = GetEnv("STORE_BACKEND", "memory")
	configs.Store.UserStore = GetEnv("USER_STORE", "memory")

	// Database config
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "storefront")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 2)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION_HOURS", 36)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "storefront")

	// OTP policy
	configs.OTP.MaxPerDay = GetEnvAsInt("OTP_MAX_PER_DAY", 5)
	configs.OTP.MaxAttempts = GetEnvAsInt("OTP_MAX_ATTEMPTS", 3)
	configs.OTP.SessionTTL = GetEnvAsDuration("OTP_SESSION_TTL", 10*time.Minute)
	configs.OTP.SweepInterval = GetEnvAsDuration("OTP_SWEEP_INTERVAL", 5*time.Minute)

	// OTP provider
	configs.Provider.Name = GetEnv("OTP_PROVIDER", "twofactor")
	configs.Provider.BaseURL = GetEnv("OTP_PROVIDER_BASE_URL", "https://2factor.in/API/V1")
	configs.Provider.APIKey = GetEnv("OTP_PROVIDER_API_KEY", "")
	configs.Provider.Timeout = GetEnvAsDuration("OTP_PROVIDER_TIMEOUT", 10*time.Second)

	// Circuit breaker
	configs.CircuitBreaker.Enabled = GetEnvAsBool("CB_ENABLED", true)
	configs.CircuitBreaker.FailureThreshold = uint32(GetEnvAsInt("CB_FAILURE_THRESHOLD", 5))
	configs.CircuitBreaker.Timeout = GetEnvAsDuration("CB_TIMEOUT", 60*time.Second)
	configs.CircuitBreaker.Interval = GetEnvAsDuration("CB_INTERVAL", 30*time.Second)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Validate rejects configurations that must not reach a running server
func Validate(configs *models.Config) error {
	var errs []error

	switch secret := configs.JWT.Secret; {
	case secret == "":
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	case secret == jwt.InsecureDefaultSecret:
		errs = append(errs, errors.New("JWT_SECRET must not be the insecure default"))
	case len(secret) < jwt.MinSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwt.MinSecretLength))
	}

	if configs.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_HOURS must be positive"))
	}
	if configs.OTP.MaxPerDay <= 0 || configs.OTP.MaxAttempts <= 0 {
		errs = append(errs, errors.New("OTP_MAX_PER_DAY and OTP_MAX_ATTEMPTS must be positive"))
	}

	switch configs.Store.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q is not supported", configs.Store.Backend))
	}
	switch configs.Store.UserStore {
	case "memory", "postgres":
	default:
		errs = append(errs, fmt.Errorf("USER_STORE %q is not supported", configs.Store.UserStore))
	}

	switch configs.Provider.Name {
	case constants.ProviderTwoFactor:
		if configs.Provider.APIKey == "" {
			errs = append(errs, errors.New("OTP_PROVIDER_API_KEY must be set for the twofactor provider"))
		}
	case constants.ProviderLocal:
		if configs.App.IsProduction() {
			errs = append(errs, errors.New("OTP_PROVIDER=local must not be used when APP_ENV=production"))
		}
	default:
		errs = append(errs, fmt.Errorf("OTP_PROVIDER %q is not supported", configs.Provider.Name))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
