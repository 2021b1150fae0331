package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"laundryhub/internal/config"
	"laundryhub/internal/database"
	"laundryhub/internal/middleware"
	"laundryhub/internal/modules/auth"
	"laundryhub/internal/modules/billing"
	"laundryhub/internal/modules/catalog"
	"laundryhub/internal/modules/customer"
	"laundryhub/internal/modules/feedback"
	"laundryhub/internal/modules/notification"
	"laundryhub/internal/modules/order"
	"laundryhub/internal/modules/reminder"
	"laundryhub/internal/modules/staff"
	jwtsvc "laundryhub/internal/pkg/jwt"
	"laundryhub/internal/pkg/sequence"
	"laundryhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	numbers := sequence.New()
	sms := notification.NewTwilioSenderFromEnv()
	adminHub := notification.NewAdminHub()
	defer adminHub.Close()

	authService := auth.NewService(userRepo, customerRepo, staffRepo, refreshRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerService)

	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(staffService)

	orderService := order.NewService(orderRepo, catalogRepo, customerRepo, staffRepo, billingRepo, numbers, sms, adminHub)
	orderHandler := order.NewHandler(orderService)

	billingService := billing.NewService(billingRepo, numbers)
	billingHandler := billing.NewHandler(billingService)

	feedbackService := feedback.NewService(feedbackRepo, orderRepo)
	feedbackHandler := feedback.NewHandler(feedbackService)

	notificationHandler := notification.NewHandler(adminHub)

	reminderService := reminder.NewService(billingRepo, sms, cfg.ReminderCron)
	reminderHandler := reminder.NewHandler(reminderService)
	if err := reminderService.Start(); err != nil {
		log.Fatal(err)
	}
	defer reminderService.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// any authenticated caller
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			feedbackHandler.RegisterProtectedRoutes(protected)
		}

		// staff
		staffOnly := v1.Group("/")
		staffOnly.Use(middleware.JWTAuth(j), middleware.StaffOnly())
		{
			orderHandler.RegisterStaffRoutes(staffOnly)
			billingHandler.RegisterRoutes(staffOnly)
			feedbackHandler.RegisterStaffRoutes(staffOnly)
		}

		// managers
		manager := v1.Group("/")
		manager.Use(middleware.JWTAuth(j), middleware.ManagerOnly())
		{
			catalogHandler.RegisterManagerRoutes(manager)
			customerHandler.RegisterManagerRoutes(manager)
			staffHandler.RegisterManagerRoutes(manager)
			reminderHandler.RegisterManagerRoutes(manager)
		}
	}

	// the admin websocket lives outside the versioned API
	ws := r.Group("/")
	ws.Use(middleware.JWTAuth(j), middleware.ManagerOnly())
	notificationHandler.RegisterRoutes(ws)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
