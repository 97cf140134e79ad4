package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelserve/gateway/internal/application/routing"
	"github.com/modelserve/gateway/internal/infrastructure/azureml"
	"github.com/modelserve/gateway/internal/infrastructure/cache"
	"github.com/modelserve/gateway/internal/infrastructure/config"
	"github.com/modelserve/gateway/internal/infrastructure/identity"
	"github.com/modelserve/gateway/internal/infrastructure/logger"
	"github.com/modelserve/gateway/internal/infrastructure/persistence"
	"github.com/modelserve/gateway/internal/infrastructure/telemetry"
	"github.com/modelserve/gateway/internal/interfaces/http/handler"
	"github.com/modelserve/gateway/internal/interfaces/http/middleware"
	"github.com/modelserve/gateway/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ModelServe Gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database tracing when telemetry is on
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.App.Env != "production",
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: cfg.App.Env == "production",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	deploymentRepo := persistence.NewGormDeploymentRepository(db.DB)
	versionRepo := persistence.NewGormAPIVersionRepository(db.DB)
	workspaceRepo := persistence.NewGormWorkspaceRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)

	// Cache store for tokens and workspace region lookups
	storeFactory := cache.NewStoreFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	store, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	log.Info("Cache store initialized", zap.String("driver", cfg.Cache.Driver))

	// Backend credential and client plumbing. One HTTP client with the
	// configured timeout is shared by the token broker and the ML client.
	httpClient := &http.Client{Timeout: cfg.Backend.RequestTimeout}
	secrets := identity.NewEnvSecretResolver()
	tokenBroker := identity.NewAADTokenBroker(httpClient, cfg.Backend.LoginEndpoint, store, secrets,
		identity.WithBrokerLogger(log),
		identity.WithRefreshSkew(cfg.Backend.TokenRefreshSkew),
	)
	backend := azureml.NewClient(httpClient, tokenBroker, store,
		azureml.WithManagementBase(cfg.Backend.ManagementEndpoint),
		azureml.WithServiceFormat(cfg.Backend.ServiceEndpointFormat),
		azureml.WithRegionTTL(cfg.Backend.RegionCacheTTL),
		azureml.WithClientLogger(log),
	)

	// Application services
	directory := identity.NewStaticDirectory(nil)
	guard := routing.NewAccessGuard(subscriptionRepo, directory, log)
	resolver := routing.NewResolver(productRepo, deploymentRepo, versionRepo, workspaceRepo, log)
	dispatcher := routing.NewDispatcher(guard, resolver, backend, secrets, log)
	correlator := routing.NewCorrelator(guard, resolver, backend, log)

	// HTTP handlers
	routingHandler := handler.NewRoutingHandler(dispatcher, correlator)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Create spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside the API prefix)
	engine.GET("/health", healthHandler(db, log))

	// Register routes under /api
	r := router.NewRouter(engine)
	r.Register(routingHandler).Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
