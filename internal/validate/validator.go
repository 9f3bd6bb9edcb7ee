// Package validate runs advisory checks over a parsed receipt. A report
// never blocks persistence: callers save the record regardless of the
// outcome and surface the report to the user.
package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"receiptly/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	DefaultExpectedTaxRate = 0.08
	DefaultTaxTolerance    = 0.05
)

// CheckResult is one line of the validation report.
type CheckResult struct {
	Title   string `json:"title"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Report is the ordered outcome of all checks. Passed is the AND of the
// individual checks; it is built once and never mutated afterwards.
type Report struct {
	Passed  bool          `json:"passed"`
	Results []CheckResult `json:"results"`
}

// DuplicateChecker is the external lookup used by the duplicate check.
type DuplicateChecker interface {
	Exists(ctx context.Context, userID uuid.UUID, billID string) (bool, error)
}

type Validator struct {
	dup             DuplicateChecker
	expectedTaxRate float64
	taxTolerance    float64
	logger          *zap.Logger
}

func New(dup DuplicateChecker, expectedTaxRate, taxTolerance float64, logger *zap.Logger) *Validator {
	if expectedTaxRate <= 0 {
		expectedTaxRate = DefaultExpectedTaxRate
	}
	if taxTolerance <= 0 {
		taxTolerance = DefaultTaxTolerance
	}
	return &Validator{
		dup:             dup,
		expectedTaxRate: expectedTaxRate,
		taxTolerance:    taxTolerance,
		logger:          logger,
	}
}

// Validate runs the checks in their fixed order. A Required Fields
// failure is terminal: the report returns immediately with that single
// entry. All other failures mark the report failed but keep going.
func (v *Validator) Validate(ctx context.Context, rec *models.Receipt, skipDuplicate bool) *Report {
	report := &Report{Passed: true}

	if missing := requiredFields(rec); len(missing) > 0 {
		report.Passed = false
		report.Results = append(report.Results, CheckResult{
			Title:   "Required Fields",
			Status:  StatusError,
			Message: "Missing fields: " + strings.Join(missing, ", "),
		})
		return report
	}
	report.Results = append(report.Results, CheckResult{
		Title:   "Required Fields",
		Status:  StatusSuccess,
		Message: "All required fields present",
	})

	if _, err := time.Parse("2006-01-02", rec.Date); err == nil {
		report.Results = append(report.Results, CheckResult{
			Title:   "Date Format",
			Status:  StatusSuccess,
			Message: fmt.Sprintf("Valid date: %s", rec.Date),
		})
	} else {
		report.Passed = false
		report.Results = append(report.Results, CheckResult{
			Title:   "Date Format",
			Status:  StatusError,
			Message: fmt.Sprintf("Invalid date format: %s", rec.Date),
		})
	}

	if rec.Amount > 0 {
		report.Results = append(report.Results, CheckResult{
			Title:   "Total Validation",
			Status:  StatusSuccess,
			Message: fmt.Sprintf("Amount detected: %.2f", rec.Amount),
		})
	} else {
		report.Passed = false
		report.Results = append(report.Results, CheckResult{
			Title:   "Total Validation",
			Status:  StatusError,
			Message: "Invalid amount value",
		})
	}

	report.Results = append(report.Results, v.checkTaxRate(rec, report))

	if !skipDuplicate {
		report.Results = append(report.Results, v.checkDuplicate(ctx, rec, report))
	}

	return report
}

func requiredFields(rec *models.Receipt) []string {
	var missing []string
	if rec.BillID == "" {
		missing = append(missing, "bill_id")
	}
	if rec.Vendor == "" {
		missing = append(missing, "vendor")
	}
	if rec.Date == "" {
		missing = append(missing, "date")
	}
	return missing
}

// checkTaxRate accepts the tax figure when the implied rate on either
// candidate subtotal (amount-tax first, then amount) sits within the
// tolerance band around the expected rate. Zero tax passes trivially.
func (v *Validator) checkTaxRate(rec *models.Receipt, report *Report) CheckResult {
	if rec.Tax == 0 {
		return CheckResult{
			Title:   "Tax Rate Validation",
			Status:  StatusSuccess,
			Message: "No tax applied (valid)",
		}
	}

	for _, subtotal := range []float64{rec.Amount - rec.Tax, rec.Amount} {
		if subtotal <= 0 {
			continue
		}
		rate := rec.Tax / subtotal
		if rate-v.expectedTaxRate <= v.taxTolerance && v.expectedTaxRate-rate <= v.taxTolerance {
			return CheckResult{
				Title:   "Tax Rate Validation",
				Status:  StatusSuccess,
				Message: fmt.Sprintf("Tax rate OK (%.2f%%, Subtotal %.2f)", rate*100, subtotal),
			}
		}
	}

	report.Passed = false
	return CheckResult{
		Title:  "Tax Rate Validation",
		Status: StatusError,
		Message: fmt.Sprintf("Tax mismatch. Expected ~%.1f%% but got %.2f on amount %.2f",
			v.expectedTaxRate*100, rec.Tax, rec.Amount),
	}
}

func (v *Validator) checkDuplicate(ctx context.Context, rec *models.Receipt, report *Report) CheckResult {
	exists, err := v.dup.Exists(ctx, rec.UserID, rec.BillID)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("Duplicate lookup failed", zap.String("bill_id", rec.BillID), zap.Error(err))
		}
		report.Passed = false
		return CheckResult{
			Title:   "Duplicate Detection",
			Status:  StatusError,
			Message: "Duplicate check unavailable",
		}
	}
	if exists {
		report.Passed = false
		return CheckResult{
			Title:   "Duplicate Detection",
			Status:  StatusError,
			Message: "Duplicate receipt found",
		}
	}
	return CheckResult{
		Title:   "Duplicate Detection",
		Status:  StatusSuccess,
		Message: "No duplicate found",
	}
}
