// Package routes defines the API routing configuration: handler and
// service wiring plus route groups with their middleware.
package routes

import (
	"mmdapay/internal/config"
	"mmdapay/internal/handlers"
	"mmdapay/internal/middleware"
	"mmdapay/internal/models"
	"mmdapay/internal/repositories"
	"mmdapay/internal/services/assessment"
	"mmdapay/internal/services/auth"
	"mmdapay/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers and registers
// every route group.
func SetupRoutes(app *fiber.App, db *gorm.DB, paymentCfg *config.PaymentConfig) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	propertyRepo := repositories.NewPropertyRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	assessmentService := assessment.NewService(db, propertyRepo, assessmentRepo)
	paymentService := payment.NewService(paymentCfg, &payment.NoopMetricsCollector{})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo, assessmentRepo, assessmentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, assessmentService, paymentRepo, repositories.IdempotencyStore)
	healthHandler := handlers.NewHealthHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "MMDA Revenue Collection API",
			"version": "1.0.0",
		})
	})
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/payment-methods", paymentHandler.Methods)

	// Authenticated endpoints
	authed := api.Use(authMiddleware.Handler)

	authed.Get("/me", userHandler.Me)
	authed.Post("/logout", authHandler.Logout)
	authed.Post("/change-password", authHandler.ChangePassword)

	authed.Get("/properties", propertyHandler.ListMine)
	authed.Get("/properties/:id", propertyHandler.Get)
	authed.Post("/properties",
		middleware.RequirePermission(models.PermissionPropertyWrite),
		propertyHandler.Register)
	authed.Post("/properties/:id/assessments",
		middleware.RequirePermission(models.PermissionAssessmentWrite),
		propertyHandler.IssueAssessment)
	authed.Get("/balance", propertyHandler.OutstandingBalance)

	authed.Post("/payments",
		middleware.RequirePermission(models.PermissionPaymentWrite),
		paymentHandler.Initiate)
	authed.Get("/payments", paymentHandler.ListMine)
	authed.Get("/payments/:reference", paymentHandler.Get)
	authed.Get("/payments/:reference/status", paymentHandler.Status)

	authed.Get("/cash/pending",
		middleware.RequirePermission(models.PermissionCashVerify),
		paymentHandler.PendingCash)
	authed.Post("/cash/:reference/verify",
		middleware.RequirePermission(models.PermissionCashVerify),
		paymentHandler.VerifyCash)
}
