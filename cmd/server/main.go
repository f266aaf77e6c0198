// Package main is the entry point for the accounts service. It loads
// configuration, connects PostgreSQL and Redis, builds the event
// publisher and starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"accountsvc/internal/config"
	"accountsvc/internal/events"
	"accountsvc/internal/repositories"
	"accountsvc/internal/repositories/cache"
	"accountsvc/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	logLevel := slog.LevelInfo
	if !config.IsProduction() {
		logLevel = slog.LevelDebug
	}
	appLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	db, err := repositories.Connect(repositories.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				appLogger.Warn("failed to close database connection", "error", err)
			}
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cacheSvc := cache.NewService(redisClient, config.GetDurationEnv("CACHE_TTL", 24*time.Hour))
	defer func() {
		if err := cacheSvc.Close(); err != nil {
			appLogger.Warn("failed to close redis connection", "error", err)
		}
	}()

	publisher, err := buildPublisher(appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	app := fiber.New()

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Rate limit all requests per client IP.
	app.Use(limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT_MAX", 10),
		Expiration: config.GetDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later",
			})
		},
	}))

	routes.SetupRoutes(app, db, cacheSvc, publisher, appLogger)

	addr := ":" + config.GetEnv("PORT", "8080")
	appLogger.Info("server listening", "addr", addr)
	log.Fatal(app.Listen(addr))
}

// buildPublisher returns the EventBridge publisher when AWS_REGION is
// configured, otherwise an in-memory publisher so local deployments
// run without AWS credentials.
func buildPublisher(appLogger *slog.Logger) (events.Publisher, error) {
	region := config.GetEnv("AWS_REGION", "")
	if region == "" {
		appLogger.Warn("AWS_REGION not set, transaction events stay in memory")
		return events.NewMemoryPublisher(appLogger), nil
	}
	busName := config.GetEnv("EVENT_BUS_NAME", "default")
	return events.NewEventBridgePublisher(context.Background(), region, busName, appLogger)
}
