package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/cache"
	"blockedge/co2e-dashboard/dashboard-backend/internal/catalog"
	"blockedge/co2e-dashboard/dashboard-backend/internal/config"
	"blockedge/co2e-dashboard/dashboard-backend/internal/dashboard"
	"blockedge/co2e-dashboard/dashboard-backend/internal/explorer"
	"blockedge/co2e-dashboard/dashboard-backend/internal/export"
	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
	"blockedge/co2e-dashboard/dashboard-backend/internal/scheduler"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, cfgErr := config.LoadConfig("config.json")
	if cfgErr != nil {
		// Malformed config file; fall back to defaults plus env overrides
		cfg, _ = config.LoadConfig("")
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	if cfgErr != nil {
		logger.Warn("Ignoring config file", zap.Error(cfgErr))
	}

	logger.Info("Starting CO2e dashboard API",
		zap.String("asset_url", cfg.Sources.AssetURL),
		zap.String("explorer_url", cfg.Sources.ExplorerAPIURL))

	// Upstream clients
	catalogClient := catalog.NewClient(cfg.Sources.AssetURL, cfg.Sources.RequestTimeout, logger)
	explorerClient := explorer.NewClient(cfg.Sources.ExplorerAPIURL, cfg.Sources.RequestTimeout, logger)

	// Caches
	projectsCache := cache.New[[]*projects.ProjectData](cfg.Cache.ProjectsTTL)
	nftCache := cache.New[*projects.NFTMetadata](cfg.Cache.NFTMetadataTTL)

	// Services
	projectService := projects.NewService(catalogClient, explorerClient, projectsCache, nftCache, logger)
	aggregator := dashboard.NewAggregator(projectService, explorerClient, cfg.Cache.StatsTTL, logger)

	// Handlers
	projectsHandler := projects.NewHandler(projectService, catalogClient, logger)
	dashboardHandler := dashboard.NewHandler(aggregator, logger)
	exportHandler := export.NewHandler(projectService, logger)

	// Setup Router
	if strings.EqualFold(cfg.Logging.Level, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware())

	// Register Routes
	api := router.Group("/api/v1")
	{
		projectsHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)
		exportHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Background cache warmer
	worker, err := scheduler.NewRefreshWorker(projectService, aggregator, cfg.Cache, logger)
	if err != nil {
		logger.Fatal("Failed to create refresh worker", zap.Error(err))
	}
	worker.Start()

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		logger.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	worker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if strings.EqualFold(level, "debug") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
