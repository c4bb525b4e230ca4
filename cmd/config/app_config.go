package config

import (
	"SpendLens-Backend/internal/api/handlers"
	"SpendLens-Backend/internal/api/routes"
	"SpendLens-Backend/internal/charts"
	"SpendLens-Backend/internal/middleware"
	"SpendLens-Backend/internal/utils"
	"SpendLens-Backend/internal/utils/storage"
	"SpendLens-Backend/pkg/advice"
	"SpendLens-Backend/pkg/ai"
	"SpendLens-Backend/pkg/budget"
	"SpendLens-Backend/pkg/jwt"
	"SpendLens-Backend/pkg/receipt"
	"SpendLens-Backend/pkg/subscription"
	"SpendLens-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const (
	extractionWorkers   = 4
	extractionQueueSize = 64
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	aiClient := ai.NewGeminiClient()
	chartGenerator := charts.NewChartGenerator()

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)
	budgetRepository := budget.NewBudgetRepository(db)
	adviceRepository := advice.NewAdviceRepository(db)
	transactionRepository := subscription.NewTransactionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	processor := receipt.NewProcessor(receiptRepository, aiClient, extractionWorkers, extractionQueueSize)
	receiptService := receipt.NewReceiptService(receiptRepository, processor, s3)
	budgetService := budget.NewBudgetService(budgetRepository, receiptRepository, chartGenerator)
	adviceService := advice.NewAdviceService(adviceRepository, receiptRepository, budgetRepository, aiClient)
	subscriptionService := subscription.NewSubscriptionService(transactionRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	budgetHandler := handlers.NewBudgetHandler(budgetService, validator)
	adviceHandler := handlers.NewAdviceHandler(adviceService)
	uploadHandler := handlers.NewUploadHandler(s3, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	app.Hooks().OnShutdown(func() error {
		processor.Shutdown()
		return nil
	})

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ReceiptHandler:      receiptHandler,
		BudgetHandler:       budgetHandler,
		AdviceHandler:       adviceHandler,
		UploadHandler:       uploadHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
