// Package analytics derives spending insights from the persisted
// receipt collection. Everything here is computed on demand and never
// stored.
package analytics

import (
	"math"
	"sort"
	"time"

	"receiptly/internal/models"
)

const (
	// Amount consistency: coefficient of variation must stay below this.
	maxAmountVariation = 0.15

	monthlyGapMin = 26.0
	monthlyGapMax = 34.0
	weeklyGapMin  = 6.0
	weeklyGapMax  = 8.0

	FrequencyMonthly = "Monthly"
	FrequencyWeekly  = "Weekly"

	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
)

// Subscription is a recurring-charge candidate flagged from a vendor's
// payment history.
type Subscription struct {
	Vendor     string    `json:"vendor"`
	AvgAmount  float64   `json:"avg_amount"`
	Frequency  string    `json:"frequency"`
	Count      int       `json:"count"`
	NextDue    time.Time `json:"next_due"`
	Confidence string    `json:"confidence"`
}

// DetectSubscriptions flags vendors whose charges look recurring: at
// least two transactions, consistent amounts, and date gaps clustering
// around a weekly or monthly cadence.
func DetectSubscriptions(receipts []models.Receipt) []Subscription {
	groups := make(map[string][]models.Receipt)
	for _, r := range receipts {
		groups[r.Vendor] = append(groups[r.Vendor], r)
	}

	vendors := make([]string, 0, len(groups))
	for v := range groups {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)

	var subs []Subscription
	for _, vendor := range vendors {
		group := groups[vendor]
		if len(group) < 2 {
			continue
		}

		mean := meanAmount(group)
		if mean == 0 {
			continue
		}
		if stddevAmount(group, mean)/mean >= maxAmountVariation {
			continue
		}

		dates := sortedDates(group)
		gaps := dayGaps(dates)
		if len(gaps) == 0 {
			continue
		}

		avgGap := meanFloat(gaps)
		monthly := avgGap >= monthlyGapMin && avgGap <= monthlyGapMax
		weekly := avgGap >= weeklyGapMin && avgGap <= weeklyGapMax
		if !monthly && !weekly {
			continue
		}

		frequency := FrequencyWeekly
		if avgGap > 20 {
			frequency = FrequencyMonthly
		}
		confidence := ConfidenceMedium
		if len(group) >= 4 {
			confidence = ConfidenceHigh
		}

		subs = append(subs, Subscription{
			Vendor:     vendor,
			AvgAmount:  mean,
			Frequency:  frequency,
			Count:      len(group),
			NextDue:    dates[len(dates)-1].AddDate(0, 0, int(avgGap)),
			Confidence: confidence,
		})
	}
	return subs
}

func meanAmount(group []models.Receipt) float64 {
	var sum float64
	for _, r := range group {
		sum += r.Amount
	}
	return sum / float64(len(group))
}

// stddevAmount is the sample standard deviation of the group's amounts.
func stddevAmount(group []models.Receipt, mean float64) float64 {
	if len(group) < 2 {
		return 0
	}
	var ss float64
	for _, r := range group {
		d := r.Amount - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(group)-1))
}

// sortedDates parses the ISO date strings, dropping unparseable ones.
func sortedDates(group []models.Receipt) []time.Time {
	var dates []time.Time
	for _, r := range group {
		if t, err := time.Parse("2006-01-02", r.Date); err == nil {
			dates = append(dates, t)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func dayGaps(dates []time.Time) []float64 {
	var gaps []float64
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, dates[i].Sub(dates[i-1]).Hours()/24)
	}
	return gaps
}

func meanFloat(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
