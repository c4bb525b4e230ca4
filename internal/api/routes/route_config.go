package routes

import (
	"SpendLens-Backend/internal/api/handlers"
	"SpendLens-Backend/internal/middleware"
	"SpendLens-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ReceiptHandler      handlers.ReceiptHandler
	BudgetHandler       handlers.BudgetHandler
	AdviceHandler       handlers.AdviceHandler
	UploadHandler       handlers.UploadHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Receipts()
	c.Budgets()
	c.Advice()
	c.Uploads()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Post("/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Subscribe)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("", c.ReceiptHandler.CreateReceipt)
	receipts.Get("", c.ReceiptHandler.GetReceipts)
	receipts.Get("/:id", c.ReceiptHandler.GetReceiptByID)
	receipts.Delete("/:id", c.ReceiptHandler.DeleteReceipt)
}

func (c *Config) Budgets() {
	budgets := c.App.Group("/api/budgets", c.Middleware.AuthMiddleware(c.JWTService))

	budgets.Get("/summary", c.BudgetHandler.GetBudgetSummary)
	budgets.Get("/chart", c.BudgetHandler.GetSpendChart)

	budgets.Post("", c.BudgetHandler.CreateBudget)
	budgets.Get("", c.BudgetHandler.GetBudgets)
	budgets.Delete("/:id", c.BudgetHandler.DeleteBudget)
}

func (c *Config) Advice() {
	advice := c.App.Group("/api/advice", c.Middleware.AuthMiddleware(c.JWTService))

	advice.Get("", c.AdviceHandler.GetAdvice)
	advice.Post("/generate", c.AdviceHandler.GenerateAdvice)
}

func (c *Config) Uploads() {
	uploads := c.App.Group("/api/uploads", c.Middleware.AuthMiddleware(c.JWTService))

	uploads.Post("/request-url", c.UploadHandler.RequestUploadURL)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.SubscriptionHandler.MidtransWebhookHandler)
}
