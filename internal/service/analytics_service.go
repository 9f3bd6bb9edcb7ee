package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"receiptly/internal/analytics"
	"receiptly/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService computes dashboards, subscription candidates and
// burn-rate projections over the persisted collection. Everything is
// derived on demand; nothing here writes.
type AnalyticsService struct {
	store  ReceiptStore
	budget config.BudgetConfig
	logger *zap.Logger

	// now is swapped in tests for deterministic month boundaries.
	now func() time.Time
}

func NewAnalyticsService(store ReceiptStore, budget config.BudgetConfig, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		budget: budget,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID) (analytics.Summary, error) {
	receipts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(receipts), nil
}

func (s *AnalyticsService) Subscriptions(ctx context.Context, userID uuid.UUID) ([]analytics.Subscription, error) {
	receipts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.DetectSubscriptions(receipts), nil
}

// BurnRate projects the current month's spend. budget and daysPassed
// are optional: zero budget falls back to the configured monthly
// budget, zero daysPassed to the current day of month. A nil result
// means no budget is configured at all.
func (s *AnalyticsService) BurnRate(ctx context.Context, userID uuid.UUID, budget float64, daysPassed int) (*analytics.BurnRate, error) {
	if budget <= 0 {
		budget = s.budget.MonthlyBudget
	}

	now := s.now()
	if daysPassed <= 0 {
		daysPassed = now.Day()
	}

	receipts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthPrefix := now.Format("2006-01")
	var currentSpend float64
	for _, r := range receipts {
		if strings.HasPrefix(r.Date, monthPrefix) {
			currentSpend += r.Amount
		}
	}

	return analytics.CalculateBurnRate(currentSpend, budget, daysPassed, 30), nil
}

// SpendingFacts renders the aggregates into the plain-text block handed
// to the insight model.
func (s *AnalyticsService) SpendingFacts(ctx context.Context, userID uuid.UUID) (string, error) {
	receipts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(receipts) == 0 {
		return "", nil
	}

	summary := analytics.Summarize(receipts)
	subs := analytics.DetectSubscriptions(receipts)

	var b strings.Builder
	fmt.Fprintf(&b, "Receipts: %d\n", summary.ReceiptCount)
	fmt.Fprintf(&b, "Total spent: %.2f (tax %.2f, average %.2f per receipt)\n",
		summary.TotalSpent, summary.TotalTax, summary.AvgAmount)

	categories := make([]string, 0, len(summary.ByCategory))
	for c := range summary.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "Category %s: %.2f\n", c, summary.ByCategory[c])
	}

	for _, sub := range subs {
		fmt.Fprintf(&b, "Likely %s subscription: %s, about %.2f, next due %s (%s confidence)\n",
			strings.ToLower(sub.Frequency), sub.Vendor, sub.AvgAmount,
			sub.NextDue.Format("2006-01-02"), strings.ToLower(sub.Confidence))
	}

	return b.String(), nil
}
