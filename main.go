package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/config"
	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/handlers"
	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/repositories/postgres"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/templates"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
	"github.com/mentorhub/mentor-qa-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		AutoMigrate: cfg.AutoMigrate,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Sessions live in Redis when it is there
	var sessionStore session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient, cfg.Session.TTL)
	}
	sessions := session.NewManager(sessionStore, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	}, logger)

	publisher := newPublisher(cfg.Events, slogLogger)

	// The model is loaded on first use
	model := llm.NewModel(llm.NewOpenAILoader(cfg.LLM), slogLogger)

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repoManager.GetRepository(),
		Logger:    slogLogger,
		Validator: validator.New(),
		Publisher: publisher,
		Model:     model,
		Cache:     cache.NewCacheManager(redisClient),
	}, services.ServiceManagerConfig{
		DisplayLocation:     cfg.DisplayTimezone,
		TranslationCacheTTL: cfg.TranslationCacheTTL,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pages, err := templates.Load(cfg.DisplayTimezone)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(pages)

	handlers.SetupMiddleware(router, logger)
	handlers.NewHandlerManager(serviceManager, sessions, cfg.DisplayTimezone, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Closes the event publisher
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	// Closes the database pool
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Server exited")
}

// newPublisher uses Kafka when brokers are configured and an in-process
// channel otherwise.
func newPublisher(cfg config.EventsConfig, logger *slog.Logger) events.EventPublisher {
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.Topic, logger)
		if err == nil {
			return publisher
		}
		logger.Warn("Kafka unavailable, publishing events in process", "error", err)
	}
	publisher, _ := events.NewGoChannelPublisher(cfg.Topic, logger)
	return publisher
}
