package routes

import (
	"gymdesk/internal/adapters/http/handlers"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/config"
	"gymdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	planRepo := repositories.NewMembershipPlanRepository(db)
	txManager := repositories.NewTxManager(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	membershipService := services.NewMembershipService(memberRepo, userRepo, txManager)
	bookingService := services.NewBookingService(bookingRepo, memberRepo)
	billingService := services.NewBillingService(paymentRepo, memberRepo, membershipService, txManager)
	expenseService := services.NewExpenseService(expenseRepo)
	financialService := services.NewFinancialService(paymentRepo, expenseRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(membershipService, billingService, planRepo)
	planHandler := handlers.NewPlanHandler(planRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(billingService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	financialHandler := handlers.NewFinancialHandler(financialService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, memberRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, memberHandler, planHandler,
		bookingHandler, paymentHandler, expenseHandler, financialHandler,
		dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
	planHandler *handlers.PlanHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	expenseHandler *handlers.ExpenseHandler,
	financialHandler *handlers.FinancialHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Plan catalog routes (public list, admin update)
	planRoutes := router.Group("/plans")
	setupPlanRoutes(planRoutes, planHandler, cfg)

	// Member routes (Staff manage members; members read their own data)
	memberRoutes := router.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler, bookingHandler)

	// Booking routes
	bookingRoutes := router.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Payment routes (Staff only; corrections Admin only)
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	paymentRoutes.Use(middleware.StaffOnly())
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Expense routes (Staff only; corrections Admin only)
	expenseRoutes := router.Group("/expenses")
	expenseRoutes.Use(middleware.AuthMiddleware(cfg))
	expenseRoutes.Use(middleware.StaffOnly())
	setupExpenseRoutes(expenseRoutes, expenseHandler)

	// Financial reporting routes (Admin only)
	financialRoutes := router.Group("/financial")
	financialRoutes.Use(middleware.AuthMiddleware(cfg))
	financialRoutes.Use(middleware.AdminOnly())
	setupFinancialRoutes(financialRoutes, financialHandler)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupPlanRoutes configures membership plan catalog routes
func setupPlanRoutes(router fiber.Router, handler *handlers.PlanHandler, cfg *config.Config) {
	// Public: prospective members can browse tiers
	router.Get("/", handler.List)
	router.Get("/:code", handler.Get)

	// Admin only: price changes
	router.Put("/:code", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.Update)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler, bookingHandler *handlers.BookingHandler) {
	// Staff routes
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.StaffOnly())

	staffRoutes.Post("/", middleware.StrictRateLimiter(), handler.Register)
	staffRoutes.Get("/", handler.List)
	staffRoutes.Get("/expiring", handler.ExpiringSoon)
	staffRoutes.Get("/:id", handler.Get)
	staffRoutes.Put("/:id/membership", handler.ChangeMembership)
	staffRoutes.Post("/:id/renew", handler.Renew)
	staffRoutes.Post("/:id/cancel", handler.Cancel)

	// Booking views scoped to one member
	staffRoutes.Get("/:id/bookings/upcoming", bookingHandler.Upcoming)
	staffRoutes.Get("/:id/bookings/past", bookingHandler.Past)
}

// setupBookingRoutes configures booking routes
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	// Any authenticated user can book and view
	router.Post("/", handler.Book)
	router.Get("/", handler.List)
	router.Get("/stats", handler.Stats)
	router.Get("/attention", middleware.StaffOnly(), handler.NeedingAttention)
	router.Get("/:id", handler.Get)
	router.Post("/:id/cancel", handler.Cancel)

	// Staff only: attendance outcomes
	router.Post("/:id/no-show", middleware.StaffOnly(), handler.NoShow)
	router.Post("/:id/complete", middleware.StaffOnly(), handler.Complete)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Post("/", handler.Record)
	router.Get("/", handler.List)
	router.Get("/recent", handler.Recent)
	router.Get("/revenue", handler.Revenue)
	router.Get("/:id", handler.Get)

	// Admin only: corrections
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupExpenseRoutes configures expense routes
func setupExpenseRoutes(router fiber.Router, handler *handlers.ExpenseHandler) {
	router.Post("/", handler.Record)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	// Admin only: corrections
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupFinancialRoutes configures financial reporting routes
func setupFinancialRoutes(router fiber.Router, handler *handlers.FinancialHandler) {
	router.Get("/reports/monthly", handler.MonthlyReport)
	router.Get("/reports/annual", handler.AnnualReport)
	router.Get("/reports/range", handler.RangeReport)
	router.Get("/expense-ratio", handler.ExpenseRatio)
	router.Get("/growth", handler.Growth)
	router.Get("/profitable-months", handler.ProfitableMonths)
	router.Get("/top", handler.TopEntries)
	router.Get("/averages", handler.MonthlyAverages)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	// Member's own dashboard (All authenticated users)
	router.Get("/me", handler.Me)

	// Receptionist dashboard (Staff only)
	router.Get("/reception", middleware.StaffOnly(), handler.Receptionist)

	// Admin dashboard (Admin only)
	router.Get("/admin", middleware.AdminOnly(), handler.Admin)
}
