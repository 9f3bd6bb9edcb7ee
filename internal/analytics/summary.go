package analytics

import "receiptly/internal/models"

// Summary aggregates the persisted collection for the dashboard view.
type Summary struct {
	TotalSpent   float64            `json:"total_spent"`
	ReceiptCount int                `json:"receipt_count"`
	AvgAmount    float64            `json:"avg_amount"`
	TotalTax     float64            `json:"total_tax"`
	ByCategory   map[string]float64 `json:"by_category"`
	ByMonth      map[string]float64 `json:"by_month"`
}

// Summarize computes spend totals, the per-category breakdown and the
// per-month (YYYY-MM) breakdown over all receipts.
func Summarize(receipts []models.Receipt) Summary {
	s := Summary{
		ReceiptCount: len(receipts),
		ByCategory:   make(map[string]float64),
		ByMonth:      make(map[string]float64),
	}

	for _, r := range receipts {
		s.TotalSpent += r.Amount
		s.TotalTax += r.Tax
		s.ByCategory[string(r.Category)] += r.Amount
		if len(r.Date) >= 7 {
			s.ByMonth[r.Date[:7]] += r.Amount
		}
	}

	if s.ReceiptCount > 0 {
		s.AvgAmount = s.TotalSpent / float64(s.ReceiptCount)
	}
	return s
}
