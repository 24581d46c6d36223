package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sefazor/aimarket-backend/internal/config"
	"github.com/sefazor/aimarket-backend/internal/handler"
	"github.com/sefazor/aimarket-backend/internal/jobs/lifecycle"
	"github.com/sefazor/aimarket-backend/internal/middleware"
	"github.com/sefazor/aimarket-backend/internal/repository"
	"github.com/sefazor/aimarket-backend/internal/service"
	"github.com/sefazor/aimarket-backend/pkg/database"
	"github.com/sefazor/aimarket-backend/pkg/email"
	"github.com/sefazor/aimarket-backend/pkg/payment"
	"github.com/sefazor/aimarket-backend/pkg/storage"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	cfg := config.LoadConfig()

	// Initialize database
	db := database.NewDatabase()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Job logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	reminderLogRepo := repository.NewReminderLogRepository(db)
	jobRunRepo := repository.NewJobRunRepository(db)

	// Storage service
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService()

	// Stripe service
	stripeService := payment.NewStripeService(
		cfg.Stripe.SecretKey,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)

	// Lifecycle job (sold marking, reminders, cleanup)
	lifecycleJob := lifecycle.New(
		mediaRepo,
		purchaseRepo,
		userRepo,
		notificationRepo,
		reminderLogRepo,
		emailService,
		r2Storage,
		zapLogger,
	)

	// Services
	authService := service.NewAuthService(userRepo, codeRepo, emailService)
	userService := service.NewUserService(userRepo)
	mediaService := service.NewMediaService(mediaRepo, userRepo, ratingRepo, r2Storage)
	paymentService := service.NewPaymentService(
		stripeService,
		userRepo,
		mediaRepo,
		purchaseRepo,
		notificationRepo,
		emailService,
		lifecycleJob,
	)
	notificationService := service.NewNotificationService(notificationRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationRepo)
	ratingService := service.NewRatingService(ratingRepo, mediaRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	mediaHandler := handler.NewMediaHandler(mediaService, validator)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	messageHandler := handler.NewMessageHandler(messageService, validator)
	ratingHandler := handler.NewRatingHandler(ratingService, validator)
	jobHandler := handler.NewJobHandler(lifecycleJob, jobRunRepo)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // video yüklemeleri için
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Public browsing
	api.Get("/media", mediaHandler.GetPublicMedia)
	api.Get("/media/:id", mediaHandler.GetMedia)
	api.Get("/media/:id/rating", ratingHandler.GetSummary)

	// Stripe webhook (public)
	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)

	// Zamanlayıcı endpoint'leri (paylaşılan secret ile)
	jobs := api.Group("/jobs", middleware.CronMiddleware(cfg.CronSecret))
	jobs.Post("/cleanup", jobHandler.RunCleanup)
	jobs.Post("/send-reminders", jobHandler.RunSendReminders)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)
		user.Post("/change-password", userHandler.ChangePassword)
		user.Get("/upload-status", userHandler.GetUploadStatus)

		media := api.Group("/media")
		media.Post("/", mediaHandler.Upload)
		media.Get("/mine/list", mediaHandler.GetMyMedia)
		media.Delete("/:id", mediaHandler.DeleteMedia)
		media.Post("/:id/rating", ratingHandler.RateMedia)

		payments := api.Group("/payments")
		payments.Get("/history", paymentHandler.GetPurchaseHistory)
		payments.Post("/checkout/:mediaId", paymentHandler.CreateCheckoutSession)

		notifications := api.Group("/notifications")
		notifications.Get("/", notificationHandler.GetInbox)
		notifications.Get("/unread", notificationHandler.CountUnread)
		notifications.Put("/:id/read", notificationHandler.MarkRead)

		messages := api.Group("/messages")
		messages.Post("/", messageHandler.Send)
		messages.Get("/", messageHandler.GetConversations)
		messages.Get("/:partnerId", messageHandler.GetThread)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
