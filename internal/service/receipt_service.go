package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"receiptly/internal/models"
	"receiptly/internal/parser"
	"receiptly/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptService runs the upload pipeline: store the file, OCR it,
// parse the text, validate the record, persist it. Validation is
// advisory: the record is saved even when checks fail, and the report
// travels back to the caller alongside the record.
type ReceiptService struct {
	store     ReceiptStore
	ocr       TextExtractor
	parser    *parser.Parser
	validator *validate.Validator
	uploadDir string
	logger    *zap.Logger
}

func NewReceiptService(
	store ReceiptStore,
	ocr TextExtractor,
	p *parser.Parser,
	v *validate.Validator,
	uploadDir string,
	logger *zap.Logger,
) *ReceiptService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &ReceiptService{
		store:     store,
		ocr:       ocr,
		parser:    p,
		validator: v,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Upload ingests one receipt file. An OCR failure aborts before
// validation and persistence; a validation failure does not.
func (s *ReceiptService) Upload(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*models.Receipt, *validate.Report, error) {
	filePath, err := s.saveFile(file, fileName)
	if err != nil {
		return nil, nil, err
	}

	text, err := s.ocr.ExtractText(ctx, filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("text extraction failed: %w", err)
	}
	text = sanitizeUTF8(text)

	rec := s.parser.Parse(ctx, text)
	rec.UserID = userID

	report := s.validator.Validate(ctx, rec, false)

	if err := s.store.Save(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	s.logger.Info("Receipt ingested",
		zap.String("bill_id", rec.BillID),
		zap.String("vendor", rec.Vendor),
		zap.Float64("amount", rec.Amount),
		zap.Bool("validation_passed", report.Passed),
	)

	return rec, report, nil
}

// ParseText parses pasted OCR text without persisting anything. The
// duplicate check is skipped since nothing is being stored.
func (s *ReceiptService) ParseText(ctx context.Context, userID uuid.UUID, text string) (*models.Receipt, *validate.Report) {
	rec := s.parser.Parse(ctx, sanitizeUTF8(text))
	rec.UserID = userID
	report := s.validator.Validate(ctx, rec, true)
	return rec, report
}

func (s *ReceiptService) List(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *ReceiptService) Get(ctx context.Context, userID uuid.UUID, billID string) (*models.Receipt, error) {
	return s.store.GetByBillID(ctx, userID, billID)
}

func (s *ReceiptService) Delete(ctx context.Context, userID uuid.UUID, billID string) error {
	return s.store.Delete(ctx, userID, billID)
}

func (s *ReceiptService) saveFile(file io.Reader, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	filePath := filepath.Join(s.uploadDir, uuid.New().String()+ext)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return filePath, nil
}
