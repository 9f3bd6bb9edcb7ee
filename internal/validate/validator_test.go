package validate

import (
	"context"
	"errors"
	"testing"

	"receiptly/internal/models"

	"github.com/google/uuid"
)

// mockDuplicateChecker is a test double for the persistence lookup.
type mockDuplicateChecker struct {
	exists bool
	err    error
	calls  int
}

func (m *mockDuplicateChecker) Exists(ctx context.Context, userID uuid.UUID, billID string) (bool, error) {
	m.calls++
	return m.exists, m.err
}

func validReceipt() *models.Receipt {
	return &models.Receipt{
		BillID:   "INV-001",
		UserID:   uuid.New(),
		Vendor:   "Fresh Mart",
		Date:     "2024-01-27",
		Subtotal: 100.00,
		Tax:      8.00,
		Amount:   108.00,
		Category: models.CategoryGrocery,
	}
}

func TestValidate_AllChecksPass(t *testing.T) {
	dup := &mockDuplicateChecker{}
	v := New(dup, 0, 0, nil)

	report := v.Validate(context.Background(), validReceipt(), false)

	if !report.Passed {
		t.Fatalf("report.Passed = false, want true: %+v", report.Results)
	}
	wantTitles := []string{
		"Required Fields",
		"Date Format",
		"Total Validation",
		"Tax Rate Validation",
		"Duplicate Detection",
	}
	if len(report.Results) != len(wantTitles) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(wantTitles))
	}
	for i, title := range wantTitles {
		if report.Results[i].Title != title {
			t.Errorf("result[%d].Title = %q, want %q", i, report.Results[i].Title, title)
		}
		if report.Results[i].Status != StatusSuccess {
			t.Errorf("result[%d] (%s) status = %q, want success", i, title, report.Results[i].Status)
		}
	}
	if dup.calls != 1 {
		t.Errorf("duplicate lookup called %d times, want 1", dup.calls)
	}
}

func TestValidate_MissingVendorShortCircuits(t *testing.T) {
	dup := &mockDuplicateChecker{}
	v := New(dup, 0, 0, nil)

	rec := validReceipt()
	rec.Vendor = ""

	report := v.Validate(context.Background(), rec, false)

	if report.Passed {
		t.Error("report.Passed = true, want false")
	}
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want exactly 1", len(report.Results))
	}
	if report.Results[0].Title != "Required Fields" || report.Results[0].Status != StatusError {
		t.Errorf("unexpected result: %+v", report.Results[0])
	}
	if dup.calls != 0 {
		t.Errorf("duplicate lookup called %d times, want 0", dup.calls)
	}
}

func TestValidate_DateFormat(t *testing.T) {
	v := New(&mockDuplicateChecker{}, 0, 0, nil)

	rec := validReceipt()
	rec.Date = "27/01/2024"

	report := v.Validate(context.Background(), rec, true)

	if report.Passed {
		t.Error("report.Passed = true, want false")
	}
	if got := report.Results[1]; got.Title != "Date Format" || got.Status != StatusError {
		t.Errorf("date check = %+v, want error", got)
	}
	// Failure does not short-circuit: later checks still run.
	if len(report.Results) != 4 {
		t.Errorf("got %d results, want 4", len(report.Results))
	}
}

func TestValidate_TaxRate(t *testing.T) {
	tests := []struct {
		name     string
		tax      float64
		amount   float64
		wantPass bool
	}{
		{"exact eight percent on implied subtotal", 8.00, 108.00, true},
		{"zero tax passes trivially", 0, 50.00, true},
		{"rate within tolerance", 10.00, 110.00, true},
		{"rate far off on both candidates", 50.00, 100.00, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(&mockDuplicateChecker{}, 0, 0, nil)
			rec := validReceipt()
			rec.Tax = tt.tax
			rec.Amount = tt.amount

			report := v.Validate(context.Background(), rec, true)

			got := report.Results[3]
			if got.Title != "Tax Rate Validation" {
				t.Fatalf("result[3].Title = %q", got.Title)
			}
			if passed := got.Status == StatusSuccess; passed != tt.wantPass {
				t.Errorf("tax check pass = %v, want %v (%s)", passed, tt.wantPass, got.Message)
			}
			if report.Passed != tt.wantPass {
				t.Errorf("report.Passed = %v, want %v", report.Passed, tt.wantPass)
			}
		})
	}
}

func TestValidate_ZeroAmountFails(t *testing.T) {
	v := New(&mockDuplicateChecker{}, 0, 0, nil)
	rec := validReceipt()
	rec.Amount = 0
	rec.Tax = 0

	report := v.Validate(context.Background(), rec, true)

	if report.Passed {
		t.Error("report.Passed = true, want false")
	}
	if got := report.Results[2]; got.Title != "Total Validation" || got.Status != StatusError {
		t.Errorf("total check = %+v, want error", got)
	}
}

func TestValidate_Duplicate(t *testing.T) {
	t.Run("existing bill id fails", func(t *testing.T) {
		v := New(&mockDuplicateChecker{exists: true}, 0, 0, nil)
		report := v.Validate(context.Background(), validReceipt(), false)
		if report.Passed {
			t.Error("report.Passed = true, want false")
		}
		last := report.Results[len(report.Results)-1]
		if last.Title != "Duplicate Detection" || last.Status != StatusError {
			t.Errorf("duplicate check = %+v, want error", last)
		}
	})

	t.Run("skip flag suppresses lookup", func(t *testing.T) {
		dup := &mockDuplicateChecker{exists: true}
		v := New(dup, 0, 0, nil)
		report := v.Validate(context.Background(), validReceipt(), true)
		if !report.Passed {
			t.Errorf("report.Passed = false, want true: %+v", report.Results)
		}
		if dup.calls != 0 {
			t.Errorf("duplicate lookup called %d times, want 0", dup.calls)
		}
	})

	t.Run("lookup failure marks check failed", func(t *testing.T) {
		v := New(&mockDuplicateChecker{err: errors.New("connection refused")}, 0, 0, nil)
		report := v.Validate(context.Background(), validReceipt(), false)
		if report.Passed {
			t.Error("report.Passed = true, want false")
		}
	})
}
