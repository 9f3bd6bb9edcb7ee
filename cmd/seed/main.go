package main

import (
	"context"
	"log"
	"time"

	"receiptly/internal/models"
	"receiptly/internal/parser"
	"receiptly/internal/repository"
	"receiptly/pkg/auth"
	"receiptly/pkg/config"
	"receiptly/pkg/logger"
	"receiptly/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@receiptly.dev"
	demoPassword = "demo-password"
)

// sampleTexts are OCR-style receipt dumps covering the common layouts:
// labeled totals, split CGST/SGST lines, itemized bodies, and a
// recurring vendor so subscription detection has history to work with.
var sampleTexts = []string{
	`FreshMart Grocery
Bill No: FM-48213
Date: 02/06/2025  10:42 AM
Milk 2L 68.00
Brown Bread 45.00
Eggs 12pc 84.00
Sub Total 197.00
CGST 7.88
SGST 7.88
TOTAL 212.76
Paid by UPI`,

	`City Pharmacy
Invoice No: CP/9917
Date: 2025-06-05
Paracetamol 500mg 32.50
Vitamin D3 210.00
Sub Total 242.50
GST 19.40
Total 261.90
CASH`,

	`Urban Diner
Bill # 5521
14/06/2025 8:15 PM
Margherita Pizza 349.00
Iced Tea 120.00
Sub Total 469.00
Tax 37.52
Total Due 506.52
CARD`,

	`Skyline Cinemas
Ticket Receipt #88341
Date: 21/06/2025
Screen 4 Seat F12 280.00
Popcorn Combo 250.00
Total 530.00
Card`,

	`StreamFlix
Invoice: SF-2025-04
Date: 2025-04-03
Monthly Plan 499.00
Total 499.00
Card`,

	`StreamFlix
Invoice: SF-2025-05
Date: 2025-05-03
Monthly Plan 499.00
Total 499.00
Card`,

	`StreamFlix
Invoice: SF-2025-06
Date: 2025-06-02
Monthly Plan 499.00
Total 499.00
Card`,

	`StreamFlix
Invoice: SF-2025-07
Date: 2025-07-03
Monthly Plan 499.00
Total 499.00
Card`,
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	userID, err := ensureDemoUser(ctx, userRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	p := parser.New()
	seeded := 0
	for _, text := range sampleTexts {
		rec := p.Parse(ctx, text)
		rec.UserID = userID

		if err := receiptRepo.Save(ctx, rec); err != nil {
			appLogger.Error("Failed to save seeded receipt",
				zap.String("vendor", rec.Vendor),
				zap.Error(err),
			)
			continue
		}

		appLogger.Info("Seeded receipt",
			zap.String("bill_id", rec.BillID),
			zap.String("vendor", rec.Vendor),
			zap.String("date", rec.Date),
			zap.Float64("amount", rec.Amount),
			zap.String("category", string(rec.Category)),
		)
		seeded++
	}

	appLogger.Info("Database seeding completed",
		zap.Int("receipts", seeded),
		zap.String("email", demoEmail),
	)
}

// ensureDemoUser returns the existing demo user or creates it.
func ensureDemoUser(ctx context.Context, userRepo *repository.UserRepository, logger *zap.Logger) (uuid.UUID, error) {
	if user, err := userRepo.GetByEmail(ctx, demoEmail); err == nil {
		logger.Info("Demo user already exists", zap.String("email", demoEmail))
		return user.ID, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}

	logger.Info("Created demo user", zap.String("email", demoEmail))
	return user.ID, nil
}
