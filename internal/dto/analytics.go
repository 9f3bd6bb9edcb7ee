package dto

type SummaryResponse struct {
	TotalSpent   float64            `json:"total_spent"`
	ReceiptCount int                `json:"receipt_count"`
	AvgAmount    float64            `json:"avg_amount"`
	TotalTax     float64            `json:"total_tax"`
	ByCategory   map[string]float64 `json:"by_category"`
	ByMonth      map[string]float64 `json:"by_month"`
}

type SubscriptionResponse struct {
	Vendor     string  `json:"vendor"`
	AvgAmount  float64 `json:"avg_amount"`
	Frequency  string  `json:"frequency"`
	Count      int     `json:"count"`
	NextDue    string  `json:"next_due"`
	Confidence string  `json:"confidence"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Count         int                    `json:"count"`
}

type BurnRateResponse struct {
	Budget      float64 `json:"budget"`
	Current     float64 `json:"current"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
	Projected   float64 `json:"projected"`
}

type InsightResponse struct {
	Insight string `json:"insight"`
}
