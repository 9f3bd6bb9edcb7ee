package service

import (
	"context"

	"receiptly/internal/models"

	"github.com/google/uuid"
)

// ReceiptStore is the persistence collaborator for receipts. The
// repository implements it; tests substitute a fake.
type ReceiptStore interface {
	Save(ctx context.Context, rec *models.Receipt) error
	Exists(ctx context.Context, userID uuid.UUID, billID string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error)
	GetByBillID(ctx context.Context, userID uuid.UUID, billID string) (*models.Receipt, error)
	Delete(ctx context.Context, userID uuid.UUID, billID string) error
}

// TextExtractor is the OCR collaborator: a black box that turns a stored
// file into raw text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
}

// InsightGenerator is the AI collaborator that maps pre-computed
// spending facts to a natural-language commentary.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, facts string) (string, error)
}
