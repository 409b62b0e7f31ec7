package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	adminHTTP "github.com/guardianchain/capsule-api/internal/admin/http"
	capsuleHTTP "github.com/guardianchain/capsule-api/internal/capsule/http"
	"github.com/guardianchain/capsule-api/internal/config"
	identityHTTP "github.com/guardianchain/capsule-api/internal/identity/http"
)

// RouterConfig carries the handlers and middleware the router wires together.
type RouterConfig struct {
	Logger *slog.Logger
	Config *config.Config

	UserHandler          *identityHTTP.UserHandler
	SessionHandler       *identityHTTP.SessionHandler
	CapsuleHandler       *capsuleHTTP.CapsuleHandler
	CertificationHandler *capsuleHTTP.CertificationHandler
	AdminHandler         *adminHTTP.AdminHandler

	Authentication   gin.HandlerFunc
	RequireAdmin     gin.HandlerFunc
	RequireSovereign gin.HandlerFunc

	// Per-class rate limiters. Any nil limiter is skipped, which disables
	// limiting for that class.
	AuthRateLimit    gin.HandlerFunc
	GeneralRateLimit gin.HandlerFunc
	AdminRateLimit   gin.HandlerFunc
	MintRateLimit    gin.HandlerFunc

	MetricsMiddleware gin.HandlerFunc
}

// NewRouter assembles the gin engine with all API routes.
//
// Rate limiting runs before authentication so unauthenticated floods are
// rejected without touching the session store. Guards run after
// authentication.
func NewRouter(ctx context.Context, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}
	if corsMiddleware := createCORSMiddleware(
		cfg.Config.CORSEnabled,
		cfg.Config.CORSAllowOrigins,
		cfg.Logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(ctx))

	use := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(handlers))
		for _, h := range handlers {
			if h != nil {
				chain = append(chain, h)
			}
		}
		return chain
	}

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", append(use(cfg.AuthRateLimit), cfg.UserHandler.RegisterHandler)...)
	auth.POST("/login", append(use(cfg.AuthRateLimit), cfg.SessionHandler.LoginHandler)...)
	auth.POST("/logout",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.SessionHandler.LogoutHandler)...)
	auth.GET("/me",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.UserHandler.CurrentUserHandler)...)

	capsules := v1.Group("/capsules")
	capsules.POST("",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.CapsuleHandler.CreateHandler)...)
	capsules.GET("/:id",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.CapsuleHandler.GetHandler)...)
	capsules.POST("/mint",
		append(use(cfg.MintRateLimit, cfg.Authentication), cfg.CapsuleHandler.MintHandler)...)
	capsules.GET("/status/:id",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.CapsuleHandler.StatusHandler)...)
	capsules.GET("/:id/mint-logs",
		append(use(cfg.GeneralRateLimit, cfg.Authentication), cfg.CapsuleHandler.MintHistoryHandler)...)

	dao := v1.Group("/dao")
	dao.POST("/certify/:id",
		append(use(cfg.AdminRateLimit, cfg.Authentication, cfg.RequireAdmin),
			cfg.CertificationHandler.CertifyHandler)...)
	dao.DELETE("/certify/:id",
		append(use(cfg.AdminRateLimit, cfg.Authentication, cfg.RequireSovereign),
			cfg.CertificationHandler.RevokeHandler)...)

	admin := v1.Group("/admin")
	admin.POST("/users/:id/tier",
		append(use(cfg.AdminRateLimit, cfg.Authentication, cfg.RequireAdmin),
			cfg.AdminHandler.UpdateTierHandler)...)
	admin.GET("/stats",
		append(use(cfg.AdminRateLimit, cfg.Authentication, cfg.RequireAdmin),
			cfg.AdminHandler.StatsHandler)...)
	admin.GET("/system/health",
		append(use(cfg.AdminRateLimit, cfg.Authentication, cfg.RequireSovereign),
			cfg.AdminHandler.HealthHandler)...)

	return router
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server around the assembled router.
func NewServer(host string, port int, router *gin.Engine, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
