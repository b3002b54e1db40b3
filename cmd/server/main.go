// Package main is the entry point for the application. It initializes
// all dependencies, sets up the HTTP server, and starts the
// application.
package main

import (
	"context"
	"log"
	"time"

	"qrmint/internal/config"
	"qrmint/internal/handlers"
	"qrmint/internal/repositories"
	"qrmint/internal/routes"
	"qrmint/internal/services/branding"
	"qrmint/internal/services/identity"
	"qrmint/internal/services/qr"
	"qrmint/internal/services/quota"
	"qrmint/internal/services/redirect"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	maxIdleConns := config.GetIntEnv("DB_MAX_IDLE_CONNS", 10)
	maxOpenConns := config.GetIntEnv("DB_MAX_OPEN_CONNS", 100)
	connMaxLifetime, err := time.ParseDuration(config.GetEnv("DB_CONN_MAX_LIFETIME", "1h"))
	if err != nil {
		connMaxLifetime = time.Hour
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("connected to database")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("failed to close database connection: %v", err)
		}
		if repositories.ScanCache != nil {
			if err := repositories.ScanCache.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
		}
	}()

	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB)
	qrRepo := repositories.NewQRCodeRepository(repositories.DB)
	dynamicRepo := repositories.NewDynamicQRCodeRepository(repositories.DB)

	// Services
	baseURL := config.AppBaseURL()
	identitySvc := identity.NewService(userRepo)
	quotaSvc := quota.NewService(qrRepo, dynamicRepo)
	qrSvc := qr.NewService(userRepo, qrRepo, dynamicRepo, quotaSvc, repositories.ScanCache, baseURL)
	redirectSvc := redirect.NewService(dynamicRepo, repositories.ScanCache, baseURL)

	var generator branding.Generator
	if apiKey := config.GetEnv("GEMINI_API_KEY", ""); apiKey != "" {
		generator, err = branding.NewGeminiGenerator(context.Background(), apiKey)
		if err != nil {
			log.Fatalf("Failed to create gemini client: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, AI suggestions disabled")
		generator = branding.NewUnconfiguredGenerator()
	}
	brandingSvc := branding.NewService(userRepo, generator)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	scanLimiter := limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
	app.Use("/api/dynamic/scan", scanLimiter)
	app.Use("/dynamic/scan", scanLimiter)

	app.Use("/api/branding", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Handlers{
		QR:       handlers.NewQRHandler(identitySvc, qrSvc, quotaSvc, redirectSvc),
		Scan:     handlers.NewScanHandler(redirectSvc),
		User:     handlers.NewUserHandler(identitySvc, quotaSvc),
		Branding: handlers.NewBrandingHandler(identitySvc, brandingSvc),
		Webhook:  handlers.NewWebhookHandler(identitySvc, config.GetEnv("IDENTITY_WEBHOOK_SECRET", "")),
	})

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
