// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	adminHTTP "github.com/guardianchain/capsule-api/internal/admin/http"
	adminUseCase "github.com/guardianchain/capsule-api/internal/admin/usecase"
	"github.com/guardianchain/capsule-api/internal/audit"
	auditRepository "github.com/guardianchain/capsule-api/internal/audit/repository"
	capsuleHTTP "github.com/guardianchain/capsule-api/internal/capsule/http"
	capsuleService "github.com/guardianchain/capsule-api/internal/capsule/service"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
	"github.com/guardianchain/capsule-api/internal/config"
	"github.com/guardianchain/capsule-api/internal/database"
	"github.com/guardianchain/capsule-api/internal/http"
	identityHTTP "github.com/guardianchain/capsule-api/internal/identity/http"
	identityService "github.com/guardianchain/capsule-api/internal/identity/service"
	identityUseCase "github.com/guardianchain/capsule-api/internal/identity/usecase"
	"github.com/guardianchain/capsule-api/internal/metrics"
	"github.com/guardianchain/capsule-api/internal/ratelimit"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Rate limiting
	rateLimitStore ratelimit.Store
	redisClient    *redis.Client
	memoryStore    *ratelimit.MemoryStore

	// Audit
	auditRepository audit.Repository

	// Identity
	passwordService identityService.PasswordService
	tokenService    identityService.SessionTokenService
	userRepo        identityUseCase.UserRepository
	sessionRepo     identityUseCase.SessionRepository
	userUseCase     identityUseCase.UserUseCase
	sessionUseCase  identityUseCase.SessionUseCase
	userHandler     *identityHTTP.UserHandler
	sessionHandler  *identityHTTP.SessionHandler

	// Capsules
	minter               capsuleService.Minter
	capsuleRepo          capsuleUseCase.CapsuleRepository
	certificationRepo    capsuleUseCase.CertificationRepository
	mintLogRepo          capsuleUseCase.MintLogRepository
	capsuleUseCase       capsuleUseCase.CapsuleUseCase
	certificationUseCase capsuleUseCase.CertificationUseCase
	capsuleHandler       *capsuleHTTP.CapsuleHandler
	certificationHandler *capsuleHTTP.CertificationHandler

	// Admin
	statsRepo    adminUseCase.StatsRepository
	adminUseCase adminUseCase.AdminUseCase
	adminHandler *adminHTTP.AdminHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	txManagerInit            sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	rateLimitStoreInit       sync.Once
	auditRepositoryInit      sync.Once
	passwordServiceInit      sync.Once
	tokenServiceInit         sync.Once
	userRepoInit             sync.Once
	sessionRepoInit          sync.Once
	userUseCaseInit          sync.Once
	sessionUseCaseInit       sync.Once
	userHandlerInit          sync.Once
	sessionHandlerInit       sync.Once
	minterInit               sync.Once
	capsuleRepoInit          sync.Once
	certificationRepoInit    sync.Once
	mintLogRepoInit          sync.Once
	capsuleUseCaseInit       sync.Once
	certificationUseCaseInit sync.Once
	capsuleHandlerInit       sync.Once
	certificationHandlerInit sync.Once
	statsRepoInit            sync.Once
	adminUseCaseInit         sync.Once
	adminHandlerInit         sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// It returns nil when metrics are disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// It returns a no-op recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// RateLimitStore returns the rate limit counter store selected by configuration.
func (c *Container) RateLimitStore() (ratelimit.Store, error) {
	var err error
	c.rateLimitStoreInit.Do(func() {
		c.rateLimitStore, err = c.initRateLimitStore()
		if err != nil {
			c.initErrors["rateLimitStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rateLimitStore"]; exists {
		return nil, storedErr
	}
	return c.rateLimitStore, nil
}

// AuditRepository returns the audit log repository based on database driver.
func (c *Container) AuditRepository() (audit.Repository, error) {
	var err error
	c.auditRepositoryInit.Do(func() {
		c.auditRepository, err = c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepository"]; exists {
		return nil, storedErr
	}
	return c.auditRepository, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// It returns nil when metrics are disabled in configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server and provider if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close rate limit store backends if initialized
	if c.memoryStore != nil {
		if err := c.memoryStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("memory store close: %w", err))
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initRateLimitStore creates the rate limit counter store based on configuration.
func (c *Container) initRateLimitStore() (ratelimit.Store, error) {
	switch c.config.RateLimitStore {
	case "memory":
		c.memoryStore = ratelimit.NewMemoryStore()
		return c.memoryStore, nil
	case "redis":
		opts, err := redis.ParseURL(c.config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		c.redisClient = redis.NewClient(opts)
		return ratelimit.NewRedisStore(c.redisClient), nil
	default:
		return nil, fmt.Errorf("unsupported rate limit store: %s", c.config.RateLimitStore)
	}
}

// initAuditRepository creates the audit log repository based on the database driver.
func (c *Container) initAuditRepository() (audit.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepository.NewPostgreSQLRepository(db), nil
	case "mysql":
		return auditRepository.NewMySQLRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// rateLimitMiddleware builds the limiter middleware for one route class, or
// nil when rate limiting is disabled.
func (c *Container) rateLimitMiddleware(policy ratelimit.Policy) (gin.HandlerFunc, error) {
	if !c.config.RateLimitEnabled {
		return nil, nil
	}

	store, err := c.RateLimitStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limit store: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for rate limiter: %w", err)
	}

	return ratelimit.Middleware(store, policy, businessMetrics, c.Logger()), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	capsuleHandler, err := c.CapsuleHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get capsule handler for http server: %w", err)
	}

	certificationHandler, err := c.CertificationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get certification handler for http server: %w", err)
	}

	adminHandler, err := c.AdminHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin handler for http server: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	authRateLimit, err := c.rateLimitMiddleware(ratelimit.Policy{
		RouteClass:     ratelimit.RouteClassAuth,
		MaxRequests:    int64(c.config.RateLimitAuthRequests),
		Window:         c.config.RateLimitAuthWindow,
		SkipSuccessful: true,
	})
	if err != nil {
		return nil, err
	}

	generalRateLimit, err := c.rateLimitMiddleware(ratelimit.Policy{
		RouteClass:  ratelimit.RouteClassGeneral,
		MaxRequests: int64(c.config.RateLimitGeneralRequests),
		Window:      c.config.RateLimitGeneralWindow,
	})
	if err != nil {
		return nil, err
	}

	adminRateLimit, err := c.rateLimitMiddleware(ratelimit.Policy{
		RouteClass:  ratelimit.RouteClassAdmin,
		MaxRequests: int64(c.config.RateLimitAdminRequests),
		Window:      c.config.RateLimitAdminWindow,
	})
	if err != nil {
		return nil, err
	}

	mintRateLimit, err := c.rateLimitMiddleware(ratelimit.Policy{
		RouteClass:  ratelimit.RouteClassMint,
		MaxRequests: int64(c.config.RateLimitMintRequests),
		Window:      c.config.RateLimitMintWindow,
	})
	if err != nil {
		return nil, err
	}

	var metricsMiddleware gin.HandlerFunc
	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		metricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
	}

	router := http.NewRouter(ctx, http.RouterConfig{
		Logger: logger,
		Config: c.config,

		UserHandler:          userHandler,
		SessionHandler:       sessionHandler,
		CapsuleHandler:       capsuleHandler,
		CertificationHandler: certificationHandler,
		AdminHandler:         adminHandler,

		Authentication:   identityHTTP.AuthenticationMiddleware(sessionUseCase, logger),
		RequireAdmin:     identityHTTP.RequireAdmin(logger),
		RequireSovereign: identityHTTP.RequireSovereign(logger),

		AuthRateLimit:    authRateLimit,
		GeneralRateLimit: generalRateLimit,
		AdminRateLimit:   adminRateLimit,
		MintRateLimit:    mintRateLimit,

		MetricsMiddleware: metricsMiddleware,
	})

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, router, logger), nil
}

// initMetricsServer creates the metrics server with its provider.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
