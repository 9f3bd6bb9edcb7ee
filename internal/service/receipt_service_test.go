package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"receiptly/internal/models"
	"receiptly/internal/parser"
	"receiptly/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockStore struct {
	saved       []*models.Receipt
	existsCalls int
	exists      bool
}

func (m *mockStore) Save(ctx context.Context, rec *models.Receipt) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockStore) Exists(ctx context.Context, userID uuid.UUID, billID string) (bool, error) {
	m.existsCalls++
	return m.exists, nil
}

func (m *mockStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	return nil, nil
}

func (m *mockStore) GetByBillID(ctx context.Context, userID uuid.UUID, billID string) (*models.Receipt, error) {
	return nil, nil
}

func (m *mockStore) Delete(ctx context.Context, userID uuid.UUID, billID string) error {
	return nil
}

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) ExtractText(ctx context.Context, filePath string) (string, error) {
	return m.text, m.err
}

func newTestService(t *testing.T, store *mockStore, ocr *mockExtractor) *ReceiptService {
	t.Helper()
	logger := zap.NewNop()
	v := validate.New(store, 0.08, 0.05, logger)
	return NewReceiptService(store, ocr, parser.New(), v, t.TempDir(), logger)
}

const validReceiptText = `FreshMart Grocery
Bill No: FM-1001
Date: 2025-06-02
Milk 68.00
Bread 45.00
Sub Total 113.00
GST 9.04
Total 122.04
UPI`

func TestUpload_ValidReceipt(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockExtractor{text: validReceiptText})
	userID := uuid.New()

	rec, report, err := svc.Upload(context.Background(), userID, strings.NewReader("img"), "receipt.jpg")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if rec.UserID != userID {
		t.Errorf("UserID = %v, want %v", rec.UserID, userID)
	}
	if rec.BillID != "FM-1001" {
		t.Errorf("BillID = %q, want FM-1001", rec.BillID)
	}
	if !report.Passed {
		t.Errorf("report.Passed = false, results: %+v", report.Results)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d receipts, want 1", len(store.saved))
	}
	if store.saved[0] != rec {
		t.Error("saved receipt is not the parsed receipt")
	}
}

func TestUpload_PersistsOnValidationFailure(t *testing.T) {
	// No amounts at all: the Total Validation check fails, but the
	// receipt must still land in the store.
	store := &mockStore{}
	svc := newTestService(t, store, &mockExtractor{text: "Corner Shop\nthanks for visiting"})

	rec, report, err := svc.Upload(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.jpg")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if report.Passed {
		t.Error("report.Passed = true, want false")
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d receipts, want 1", len(store.saved))
	}
	if rec.Amount != 0 {
		t.Errorf("Amount = %v, want 0", rec.Amount)
	}
}

func TestUpload_PersistsDuplicate(t *testing.T) {
	store := &mockStore{exists: true}
	svc := newTestService(t, store, &mockExtractor{text: validReceiptText})

	_, report, err := svc.Upload(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.jpg")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if report.Passed {
		t.Error("report.Passed = true, want false for a duplicate")
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d receipts, want 1", len(store.saved))
	}
}

func TestUpload_OCRFailureAborts(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockExtractor{err: errors.New("tesseract unavailable")})

	_, _, err := svc.Upload(context.Background(), uuid.New(), strings.NewReader("img"), "receipt.jpg")
	if err == nil {
		t.Fatal("Upload() error = nil, want error")
	}
	if len(store.saved) != 0 {
		t.Errorf("saved %d receipts, want 0", len(store.saved))
	}
}

func TestParseText_DoesNotPersist(t *testing.T) {
	store := &mockStore{exists: true}
	svc := newTestService(t, store, &mockExtractor{})
	userID := uuid.New()

	rec, report := svc.ParseText(context.Background(), userID, validReceiptText)

	if rec.UserID != userID {
		t.Errorf("UserID = %v, want %v", rec.UserID, userID)
	}
	if !report.Passed {
		t.Errorf("report.Passed = false, results: %+v", report.Results)
	}
	if len(store.saved) != 0 {
		t.Errorf("saved %d receipts, want 0", len(store.saved))
	}
	if store.existsCalls != 0 {
		t.Errorf("duplicate lookups = %d, want 0", store.existsCalls)
	}
}
