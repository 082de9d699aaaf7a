// @title           Guild Hub API
// @version         1.0
// @description     Companies, guilds and players with signed photo URLs

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "guild-hub-api/docs" // Swagger docs import

	"guild-hub-api/internal/cache"
	"guild-hub-api/internal/client"
	"guild-hub-api/internal/config"
	"guild-hub-api/internal/database"
	"guild-hub-api/internal/job"
	"guild-hub-api/internal/metrics"
	"guild-hub-api/internal/repository"
	"guild-hub-api/internal/router"
	"guild-hub-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Guild Hub API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second)
	} else {
		logger.Info("Database connected successfully")

		if err := database.AutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}

		database.RegisterMetricsCallbacks(db, m)
	}

	// Initialize Redis-backed photo URL cache
	redisClient, err := database.InitRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unreachable, photo URL caching degraded", zap.Error(err))
	}
	photoCache := cache.NewRedisCache(redisClient)

	// Initialize object storage
	var storage client.StorageClient
	if cfg.Storage.Bucket != "" {
		s3Storage, err := client.NewS3StorageClient(&cfg.Storage)
		if err != nil {
			logger.Error("Failed to initialize storage client", zap.Error(err))
			os.Exit(1)
		}
		storage = s3Storage

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			logger.Warn("Failed to ensure storage bucket, photo features may be limited",
				zap.String("bucket", cfg.Storage.Bucket),
				zap.Error(err))
		}
		cancel()

		logger.Info("Storage client initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		logger.Warn("Storage configuration incomplete, photo features disabled")
	}

	// Stats reporter and business metrics collector
	stop := make(chan struct{})
	if db != nil {
		database.StartDBStatsReporter(db, m, 15*time.Second, stop)
	}
	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()

	// Domain event publisher; webhook-backed when configured
	var publisher repository.EventPublisher = repository.NewLoggingEventPublisher(logger)
	if cfg.Webhook.URL != "" {
		webhook := client.NewEventWebhookClient(cfg.Webhook.URL, cfg.Webhook.APIKey, cfg.Webhook.Timeout, logger, m)
		publisher = repository.NewWebhookEventPublisher(webhook)
		logger.Info("Event webhook publisher enabled", zap.String("url", cfg.Webhook.URL))
	}

	// Periodic photo audit
	scheduler := cron.New()
	if db != nil && storage != nil {
		companyRepo := repository.NewCompanyRepository(db)
		dispatcher := repository.NewEventDispatcher(publisher, logger)
		resolver := service.NewPhotoResolver(photoCache, storage, cfg.Storage.URLExpiry, m, logger)
		auditJob := job.NewPhotoAuditJob(companyRepo, storage, resolver, dispatcher, logger)

		if _, err := scheduler.AddJob("0 3 * * *", auditJob); err != nil {
			logger.Warn("Failed to schedule photo audit job", zap.Error(err))
		} else {
			scheduler.Start()
			logger.Info("Photo audit job scheduled", zap.String("schedule", "0 3 * * *"))
		}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.CORS.Origins(),
		Metrics:        m,
		Cache:          photoCache,
		Storage:        storage,
		URLExpiry:      cfg.Storage.URLExpiry,
		Publisher:      publisher,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Guild Hub API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	close(stop)
	collector.Stop()
	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
