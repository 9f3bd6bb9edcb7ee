package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"receiptly/internal/api"
	"receiptly/internal/api/handlers"
	"receiptly/internal/parser"
	"receiptly/internal/repository"
	"receiptly/internal/service"
	"receiptly/internal/validate"
	"receiptly/pkg/auth"
	"receiptly/pkg/config"
	"receiptly/pkg/logger"
	"receiptly/pkg/postgres"

	"go.uber.org/zap"
)

// @title Receiptly API
// @version 1.0
// @description Receipt parsing, validation and spending analytics service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@receiptly.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Receiptly service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	ocrService, err := service.NewOCRService(&cfg.OCR, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize OCR service", zap.Error(err))
	}
	defer ocrService.Close()

	receiptParser := parser.New().WithEntityExtractor(llmService)
	validator := validate.New(receiptRepo, cfg.Budget.ExpectedTaxRate, cfg.Budget.TaxTolerance, appLogger)

	receiptService := service.NewReceiptService(receiptRepo, ocrService, receiptParser, validator, cfg.Server.UploadDir, appLogger)
	analyticsService := service.NewAnalyticsService(receiptRepo, cfg.Budget, appLogger)
	insightService := service.NewInsightService(analyticsService, llmService, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	receiptHandler := handlers.NewReceiptHandler(receiptService, appLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, insightService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, receiptHandler, analyticsHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
