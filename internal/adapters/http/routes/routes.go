package routes

import (
	"certportal/internal/adapters/http/handlers"
	"certportal/internal/adapters/http/middleware"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/config"
	"certportal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Dependencies are the collaborators that vary between deployments and tests
type Dependencies struct {
	Notifier services.Notifier
	Gateway  services.PaymentGateway
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	// Initialize repositories
	repos := repositories.New(db)

	// Initialize services
	authService := services.NewAuthService(repos, deps.Notifier, cfg)
	paymentService := services.NewPaymentService(repos, deps.Gateway, cfg)
	certificateService := services.NewCertificateService(repos, paymentService, deps.Notifier)
	grievanceService := services.NewGrievanceService(repos, deps.Notifier)
	accountService := services.NewAccountService(repos)
	reportService := services.NewReportService(repos)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, func() error { return config.HealthCheck(db) })
	authHandler := handlers.NewAuthHandler(authService, cfg)
	certificateHandler := handlers.NewCertificateHandler(certificateService)
	grievanceHandler := handlers.NewGrievanceHandler(grievanceService)
	userHandler := handlers.NewUserHandler(accountService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(authService)

	// ============================================================
	// Auth
	// ============================================================
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/verify", middleware.AuthRateLimiter(), authHandler.Verify)
	authRoutes.Post("/resend-code", middleware.AuthRateLimiter(), authHandler.ResendCode)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", auth, authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)

	// ============================================================
	// Certificate requests
	// ============================================================
	requests := apiV1.Group("/requests", auth, middleware.NoCacheHeaders())
	requests.Post("/", middleware.UserOnly(), certificateHandler.Submit)
	requests.Get("/mine", middleware.UserOnly(), certificateHandler.ListMine)
	requests.Get("/", middleware.OfficerOrSupervisor(), certificateHandler.ListAll)
	requests.Post("/:id/decide", middleware.OfficerOrSupervisor(), certificateHandler.Decide)
	requests.Get("/:id", certificateHandler.Get)

	apiV1.Get("/certificates", auth, middleware.UserOnly(), certificateHandler.ListIssued)

	// ============================================================
	// Grievances
	// ============================================================
	grievances := apiV1.Group("/grievances", auth, middleware.NoCacheHeaders())
	grievances.Post("/", middleware.UserOnly(), grievanceHandler.File)
	grievances.Get("/mine", middleware.UserOnly(), grievanceHandler.ListMine)
	grievances.Get("/", middleware.SupervisorOnly(), grievanceHandler.ListAll)
	grievances.Post("/:id/resolve", middleware.SupervisorOnly(), grievanceHandler.Resolve)

	// ============================================================
	// Dashboards & reports
	// ============================================================
	dashboard := apiV1.Group("/dashboard", auth, middleware.NoCacheHeaders())
	dashboard.Get("/user", middleware.UserOnly(), dashboardHandler.UserDashboard)
	dashboard.Get("/officer", middleware.OfficerOrSupervisor(), dashboardHandler.OfficerDashboard)
	dashboard.Get("/supervisor", middleware.SupervisorOnly(), dashboardHandler.SupervisorDashboard)

	apiV1.Get("/reports", auth, middleware.SupervisorOnly(), dashboardHandler.Report)

	// ============================================================
	// Supervisor account management
	// ============================================================
	officers := apiV1.Group("/officers", auth, middleware.SupervisorOnly())
	officers.Get("/", userHandler.ListOfficers)
	officers.Post("/", userHandler.CreateOfficer)
	officers.Get("/:id", userHandler.GetOfficer)
	officers.Put("/:id", userHandler.UpdateOfficer)
	officers.Delete("/:id", userHandler.DeleteOfficer)

	users := apiV1.Group("/users", auth, middleware.SupervisorOnly())
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Delete("/:id", userHandler.DeleteUser)
}
