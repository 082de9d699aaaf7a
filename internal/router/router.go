package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guild-hub-api/internal/cache"
	"guild-hub-api/internal/client"
	"guild-hub-api/internal/handler"
	"guild-hub-api/internal/metrics"
	"guild-hub-api/internal/middleware"
	"guild-hub-api/internal/repository"
	"guild-hub-api/internal/response"
	"guild-hub-api/internal/service"
)

// Config holds all dependencies needed to build the HTTP router
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Cache          cache.Cache
	Storage        client.StorageClient
	URLExpiry      time.Duration
	Publisher      repository.EventPublisher
}

// Setup wires repositories, services and handlers and returns the engine
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(func(c *gin.Context) {
		response.SetRequestStart(c)
		c.Next()
	})

	// Repositories
	companyRepo := repository.NewCompanyRepository(cfg.DB)
	guildRepo := repository.NewGuildRepository(cfg.DB)
	playerRepo := repository.NewPlayerRepository(cfg.DB)

	// Domain event dispatch
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = repository.NewLoggingEventPublisher(cfg.Logger)
	}
	dispatcher := repository.NewEventDispatcher(publisher, cfg.Logger)

	// Services
	resolver := service.NewPhotoResolver(cfg.Cache, cfg.Storage, cfg.URLExpiry, cfg.Metrics, cfg.Logger)
	companyService := service.NewCompanyService(companyRepo, cfg.Storage, resolver, dispatcher, cfg.Metrics, cfg.Logger)
	guildService := service.NewGuildService(guildRepo, playerRepo, resolver, dispatcher, cfg.Metrics, cfg.Logger)
	playerService := service.NewPlayerService(playerRepo, guildRepo, dispatcher, cfg.Metrics, cfg.Logger)

	// Handlers
	companyHandler := handler.NewCompanyHandler(companyService)
	guildHandler := handler.NewGuildHandler(guildService)
	playerHandler := handler.NewPlayerHandler(playerService)

	// Infrastructure endpoints (no auth)
	r.GET("/health", healthCheck(cfg.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		companies := api.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.GET("/by-user", companyHandler.ListMyCompanies)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.POST("", companyHandler.CreateCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.PATCH("/:id", companyHandler.PatchCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
		}

		guilds := api.Group("/guilds")
		{
			guilds.GET("", guildHandler.ListGuilds)
			guilds.GET("/by-user", guildHandler.ListMyGuilds)
			guilds.GET("/:id", guildHandler.GetGuild)
			guilds.POST("", guildHandler.CreateGuild)
			guilds.PUT("/:id", guildHandler.UpdateGuild)
			guilds.PATCH("/:id", guildHandler.PatchGuild)
			guilds.DELETE("/:id", guildHandler.DeleteGuild)
		}

		players := api.Group("/players")
		{
			players.GET("", playerHandler.ListPlayers)
			players.GET("/by-user", playerHandler.ListMyPlayers)
			players.GET("/:id", playerHandler.GetPlayer)
			players.POST("", playerHandler.CreatePlayer)
			players.PUT("/:id", playerHandler.UpdatePlayer)
			players.PATCH("/:id", playerHandler.PatchPlayer)
			players.DELETE("/:id", playerHandler.DeletePlayer)
		}
	}

	return r
}

// healthCheck reports liveness plus database connectivity
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "up"
		if db == nil {
			dbStatus = "down"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}

		c.JSON(200, gin.H{
			"status":   "ok",
			"database": dbStatus,
		})
	}
}
