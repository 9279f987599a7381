package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"prodsight-server/internal/config"
	"prodsight-server/internal/handler"
	"prodsight-server/internal/logger"
	"prodsight-server/internal/middleware"
	"prodsight-server/internal/optimizer"
	"prodsight-server/internal/scheduler"
	"prodsight-server/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	log.Println("Starting ProdSight scheduling service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// Dependencies
	jsonStore := store.New(cfg.DataDir, zapLogger)
	scheduleOptimizer := optimizer.New()
	aiClient := scheduler.NewScheduleClient(scheduler.ClientConfig{
		APIKey:          cfg.AIAPIKey,
		BaseURL:         cfg.AIBaseURL,
		Model:           cfg.AIModel,
		Timeout:         cfg.AITimeout,
		MinCallInterval: cfg.AIMinCallInterval,
	}, zapLogger)
	aiScheduler := scheduler.NewScheduler(aiClient, cfg.AIModel, zapLogger)
	aiHandler := handler.NewAIHandler(jsonStore, scheduleOptimizer, aiScheduler, zapLogger)

	// HTTP router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	aiHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
