package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/config"
	"github.com/piresc/storefront/internal/pkg/database"
	"github.com/piresc/storefront/internal/pkg/health"
	jwtpkg "github.com/piresc/storefront/internal/pkg/jwt"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/middleware"
	"github.com/piresc/storefront/internal/pkg/models"
	nrpkg "github.com/piresc/storefront/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/storefront/internal/pkg/nsq"
	"github.com/piresc/storefront/internal/pkg/server"
	"github.com/piresc/storefront/services/auth"
	"github.com/piresc/storefront/services/auth/gateway"
	gatewayNSQ "github.com/piresc/storefront/services/auth/gateway/nsq"
	"github.com/piresc/storefront/services/auth/handler"
	httpHandler "github.com/piresc/storefront/services/auth/handler/http"
	"github.com/piresc/storefront/services/auth/repository"
	"github.com/piresc/storefront/services/auth/usecase"
)

func main() {
	configPath := flag.String("config", "config/auth.env", "path to an env file, read only when APP_ENV=local")
	flag.Parse()

	configs := config.InitConfig(*configPath)
	if err := config.Validate(configs); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}

	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	shutdown := server.NewShutdownManager(zapLogger)
	checkers := map[string]health.Checker{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize stores
	rateLimiter, sessions, sweepTargets := initOTPStores(configs, zapLogger, shutdown, checkers)
	users := initUserRepo(ctx, configs, zapLogger, shutdown, checkers)

	if len(sweepTargets) > 0 {
		sweeper := repository.NewSweeper(configs.OTP.SweepInterval, sweepTargets)
		sweeper.Start(ctx)
		shutdown.Register("sweeper", sweeper.Stop)
	}

	// Initialize gateways
	provider, err := gateway.NewOTPProvider(configs, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize OTP provider", logger.Err(err))
	}
	events := initEventPublisher(configs, zapLogger, shutdown)

	tokens, err := jwtpkg.NewTokenIssuerFromConfig(configs)
	if err != nil {
		zapLogger.Fatal("Failed to initialize token issuer", logger.Err(err))
	}

	// Initialize UseCase
	authUC := usecase.NewAuthUC(configs, rateLimiter, sessions, users, provider, tokens, events)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, configs.App.Name, configs.App.Version, checkers)
	handler.NewHandler(httpHandler.NewAuthHandler(authUC), tokens).RegisterRoutes(e)

	if nrApp != nil {
		shutdown.Register("newrelic", func(context.Context) error {
			nrpkg.Shutdown(nrApp, 10*time.Second)
			return nil
		})
	}

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port, shutdownTimeout)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown completed with errors", logger.Err(err))
	}
}

// initOTPStores builds the rate limiter and session store for STORE_BACKEND.
// In-memory stores are returned as sweep targets.
func initOTPStores(
	configs *models.Config,
	zapLogger *logger.ZapLogger,
	shutdown *server.ShutdownManager,
	checkers map[string]health.Checker,
) (auth.RateLimiter, auth.SessionStore, map[string]repository.Sweepable) {
	if configs.Store.Backend == "redis" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
		checkers["redis"] = redisClient

		return repository.NewRateLimitRedisRepo(redisClient, configs.OTP.MaxPerDay),
			repository.NewSessionRedisRepo(redisClient, configs.OTP.SessionTTL),
			nil
	}

	rateLimiter := repository.NewRateLimitMemoryRepo(configs.OTP.MaxPerDay)
	sessions := repository.NewSessionMemoryRepo(configs.OTP.SessionTTL)
	return rateLimiter, sessions, map[string]repository.Sweepable{
		"rate_limits":  rateLimiter,
		"otp_sessions": sessions,
	}
}

// initUserRepo builds the user directory for USER_STORE
func initUserRepo(
	ctx context.Context,
	configs *models.Config,
	zapLogger *logger.ZapLogger,
	shutdown *server.ShutdownManager,
	checkers map[string]health.Checker,
) auth.UserRepo {
	if configs.Store.UserStore != "postgres" {
		return repository.NewUserMemoryRepo()
	}

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })
	checkers["postgres"] = postgresClient

	users := repository.NewUserPostgresRepo(postgresClient.GetDB())
	if err := users.EnsureSchema(ctx); err != nil {
		zapLogger.Fatal("Failed to prepare users table", logger.Err(err))
	}
	return users
}

// initEventPublisher connects to nsqd, or drops events when NSQ_ADDRESS is empty
func initEventPublisher(configs *models.Config, zapLogger *logger.ZapLogger, shutdown *server.ShutdownManager) auth.EventPublisher {
	if configs.NSQ.Address == "" {
		zapLogger.Info("NSQ_ADDRESS not set, auth events are disabled")
		return gatewayNSQ.NoopGateway{}
	}

	producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	shutdown.Register("nsq", func(context.Context) error {
		producer.Stop()
		return nil
	})
	return gatewayNSQ.NewNSQGateway(producer)
}
