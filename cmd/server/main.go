package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"certportal/internal/adapters/http/middleware"
	"certportal/internal/adapters/http/routes"
	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/config"
	"certportal/internal/core/services"
	"certportal/internal/pkg/password"

	"github.com/gofiber/fiber/v2"

	_ "certportal/docs" // Swagger docs
)

// @title Certificate Portal API
// @version 1.0
// @description Birth and death certificate issuance portal

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	password.SetCost(cfg.BcryptCost)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	repos := repositories.New(db)

	// Seed default supervisor and officer on an empty database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.NewSeeder(repos, cfg.Seed).Run(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to seed default accounts: %v", err)
	}
	cancel()

	// Purge dead sessions and expired verification codes
	cleanupService := services.NewCleanupService(repos, cfg.CleanupSchedule)
	if err := cleanupService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cleanup: %v", err)
	}
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Certificate Portal API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    4 * int(services.MaxDocumentSize),
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	notifier := services.NewNotificationService(cfg.NotifyWebhook)
	if !notifier.IsEnabled() {
		log.Println("⚠️ NOTIFY_WEBHOOK_URL not set, notifications are disabled")
	}

	// Setup routes
	routes.Setup(app, db, cfg, routes.Dependencies{
		Notifier: notifier,
		Gateway:  services.NewSimulatedGateway(),
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}

	// Let queued notifications finish before the process exits
	notifier.Wait()
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
