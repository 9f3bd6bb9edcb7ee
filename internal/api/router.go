package api

import (
	"receiptly/docs"
	"receiptly/internal/api/handlers"
	"receiptly/pkg/auth"
	"receiptly/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	receiptHandler *handlers.ReceiptHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger docs are registered by the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	userAPI := app.Group("/user")
	authGroup := userAPI.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	receipts := protected.Group("/receipts")
	receipts.Post("/upload", receiptHandler.UploadReceipt)
	receipts.Post("/parse", receiptHandler.ParseReceiptText)
	receipts.Get("", receiptHandler.ListReceipts)
	receipts.Get("/:bill_id", receiptHandler.GetReceipt)
	receipts.Delete("/:bill_id", receiptHandler.DeleteReceipt)

	analyticsGroup := protected.Group("/analytics")
	analyticsGroup.Get("/summary", analyticsHandler.GetSummary)
	analyticsGroup.Get("/subscriptions", analyticsHandler.GetSubscriptions)
	analyticsGroup.Get("/burn-rate", analyticsHandler.GetBurnRate)

	protected.Get("/insights", analyticsHandler.GetInsight)

	return app
}
