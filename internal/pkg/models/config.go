package models

import "time"

// Config represents application configuration
type Config struct {
	App            AppConfig
	Server         ServerConfig
	Store          StoreConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	NSQ            NSQConfig
	JWT            JWTConfig
	OTP            OTPConfig
	Provider       ProviderConfig
	CircuitBreaker CircuitBreakerConfig
	NewRelic       NewRelicConfig
	Logger         LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// IsProduction reports whether the app runs with a production posture.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production" || a.Environment == "prod"
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StoreConfig selects the backends for transient and persistent state
type StoreConfig struct {
	Backend   string // "memory" or "redis", for rate limits and OTP sessions
	UserStore string // "memory" or "postgres"
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains the nsqd address used for auth events; empty disables publishing
type NSQConfig struct {
	Address string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
	Issuer     string
}

// OTPConfig holds the OTP flow policy
type OTPConfig struct {
	MaxPerDay     int
	MaxAttempts   int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// ProviderConfig configures the SMS OTP provider
type ProviderConfig struct {
	Name    string // "twofactor" or "local"
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CircuitBreakerConfig guards outbound provider calls
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32
	Timeout          time.Duration
	Interval         time.Duration
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
