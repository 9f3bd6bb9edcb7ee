package analytics

import (
	"math"
	"testing"

	"receiptly/internal/models"
)

func TestDetectSubscriptions_MonthlyHighConfidence(t *testing.T) {
	recs := []models.Receipt{
		{BillID: "n1", Vendor: "Netflix", Date: "2024-01-05", Amount: 100},
		{BillID: "n2", Vendor: "Netflix", Date: "2024-02-04", Amount: 102},
		{BillID: "n3", Vendor: "Netflix", Date: "2024-03-05", Amount: 98},
		{BillID: "n4", Vendor: "Netflix", Date: "2024-04-04", Amount: 101},
	}

	subs := DetectSubscriptions(recs)
	if len(subs) != 1 {
		t.Fatalf("got %d subscriptions, want 1", len(subs))
	}
	sub := subs[0]
	if sub.Vendor != "Netflix" {
		t.Errorf("Vendor = %q, want Netflix", sub.Vendor)
	}
	if sub.Frequency != FrequencyMonthly {
		t.Errorf("Frequency = %q, want Monthly", sub.Frequency)
	}
	if sub.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %q, want High", sub.Confidence)
	}
	if math.Abs(sub.AvgAmount-100.25) > 1e-9 {
		t.Errorf("AvgAmount = %v, want 100.25", sub.AvgAmount)
	}
	// 90 days over 3 gaps; next due = 2024-04-04 + 30 days.
	if got := sub.NextDue.Format("2006-01-02"); got != "2024-05-04" {
		t.Errorf("NextDue = %s, want 2024-05-04", got)
	}
}

func TestDetectSubscriptions_Weekly(t *testing.T) {
	recs := []models.Receipt{
		{BillID: "g1", Vendor: "Gym Pass", Date: "2024-03-01", Amount: 20},
		{BillID: "g2", Vendor: "Gym Pass", Date: "2024-03-08", Amount: 20},
		{BillID: "g3", Vendor: "Gym Pass", Date: "2024-03-15", Amount: 20},
	}

	subs := DetectSubscriptions(recs)
	if len(subs) != 1 {
		t.Fatalf("got %d subscriptions, want 1", len(subs))
	}
	if subs[0].Frequency != FrequencyWeekly {
		t.Errorf("Frequency = %q, want Weekly", subs[0].Frequency)
	}
	if subs[0].Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want Medium", subs[0].Confidence)
	}
}

func TestDetectSubscriptions_Rejections(t *testing.T) {
	tests := []struct {
		name string
		recs []models.Receipt
	}{
		{
			name: "single transaction",
			recs: []models.Receipt{
				{Vendor: "Once Off", Date: "2024-01-01", Amount: 50},
			},
		},
		{
			name: "gap outside both windows",
			recs: []models.Receipt{
				{Vendor: "Corner Cafe", Date: "2024-01-01", Amount: 10},
				{Vendor: "Corner Cafe", Date: "2024-01-04", Amount: 10},
			},
		},
		{
			name: "amounts too variable",
			recs: []models.Receipt{
				{Vendor: "Grocer", Date: "2024-01-01", Amount: 50},
				{Vendor: "Grocer", Date: "2024-01-31", Amount: 150},
			},
		},
		{
			name: "zero mean amount",
			recs: []models.Receipt{
				{Vendor: "Freebie", Date: "2024-01-01", Amount: 0},
				{Vendor: "Freebie", Date: "2024-01-31", Amount: 0},
			},
		},
		{
			name: "unparseable dates leave no gaps",
			recs: []models.Receipt{
				{Vendor: "Mystery", Date: "not-a-date", Amount: 10},
				{Vendor: "Mystery", Date: "also-bad", Amount: 10},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if subs := DetectSubscriptions(tt.recs); len(subs) != 0 {
				t.Errorf("got %d subscriptions, want 0: %+v", len(subs), subs)
			}
		})
	}
}

func TestCalculateBurnRate(t *testing.T) {
	t.Run("over budget projection", func(t *testing.T) {
		br := CalculateBurnRate(4000, 5000, 10, 30)
		if br == nil {
			t.Fatal("got nil, want result")
		}
		if br.Projected != 12000 {
			t.Errorf("Projected = %v, want 12000", br.Projected)
		}
		if br.Status != StatusOverBudget {
			t.Errorf("Status = %q, want Over Budget", br.Status)
		}
		if br.Remaining != 1000 {
			t.Errorf("Remaining = %v, want 1000", br.Remaining)
		}
		if br.PercentUsed != 80 {
			t.Errorf("PercentUsed = %v, want 80", br.PercentUsed)
		}
	})

	t.Run("under budget", func(t *testing.T) {
		br := CalculateBurnRate(500, 5000, 15, 30)
		if br.Status != StatusUnderBudget {
			t.Errorf("Status = %q, want Under Budget", br.Status)
		}
	})

	t.Run("on track", func(t *testing.T) {
		br := CalculateBurnRate(3000, 5000, 20, 30)
		if br.Status != StatusOnTrack {
			t.Errorf("Status = %q, want On Track", br.Status)
		}
	})

	t.Run("zero days passed clamps to one", func(t *testing.T) {
		br := CalculateBurnRate(100, 5000, 0, 30)
		if br.Projected != 3000 {
			t.Errorf("Projected = %v, want 3000", br.Projected)
		}
	})

	t.Run("no budget gives no result", func(t *testing.T) {
		if br := CalculateBurnRate(100, 0, 10, 30); br != nil {
			t.Errorf("got %+v, want nil", br)
		}
	})

	t.Run("overspend caps percent used", func(t *testing.T) {
		br := CalculateBurnRate(6000, 5000, 10, 30)
		if br.PercentUsed != 100 {
			t.Errorf("PercentUsed = %v, want 100", br.PercentUsed)
		}
	})
}

func TestSummarize(t *testing.T) {
	recs := []models.Receipt{
		{Vendor: "A", Date: "2024-01-05", Amount: 100, Tax: 8, Category: models.CategoryGrocery},
		{Vendor: "B", Date: "2024-01-20", Amount: 50, Tax: 4, Category: models.CategoryFood},
		{Vendor: "C", Date: "2024-02-10", Amount: 50, Tax: 0, Category: models.CategoryGrocery},
	}

	s := Summarize(recs)
	if s.TotalSpent != 200 {
		t.Errorf("TotalSpent = %v, want 200", s.TotalSpent)
	}
	if s.ReceiptCount != 3 {
		t.Errorf("ReceiptCount = %v, want 3", s.ReceiptCount)
	}
	if s.TotalTax != 12 {
		t.Errorf("TotalTax = %v, want 12", s.TotalTax)
	}
	if s.ByCategory["Grocery"] != 150 {
		t.Errorf("ByCategory[Grocery] = %v, want 150", s.ByCategory["Grocery"])
	}
	if s.ByMonth["2024-01"] != 150 {
		t.Errorf("ByMonth[2024-01] = %v, want 150", s.ByMonth["2024-01"])
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.ReceiptCount != 0 || s.TotalSpent != 0 || s.AvgAmount != 0 {
		t.Errorf("unexpected summary for empty input: %+v", s)
	}
}
