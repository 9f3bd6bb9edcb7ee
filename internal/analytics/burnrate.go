package analytics

const (
	StatusOverBudget  = "Over Budget"
	StatusUnderBudget = "Under Budget"
	StatusOnTrack     = "On Track"
)

// BurnRate projects full-month spend from a partial month's daily
// average and grades it against the budget.
type BurnRate struct {
	Budget      float64 `json:"budget"`
	Current     float64 `json:"current"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
	Projected   float64 `json:"projected"`
}

// CalculateBurnRate returns nil when there is no budget to grade
// against. daysInMonth is normally 30.
func CalculateBurnRate(currentSpend, monthlyBudget float64, daysPassed, daysInMonth int) *BurnRate {
	if monthlyBudget <= 0 {
		return nil
	}

	days := daysPassed
	if days < 1 {
		days = 1
	}
	spendPerDay := currentSpend / float64(days)
	projected := spendPerDay * float64(daysInMonth)

	status := StatusOnTrack
	if projected > monthlyBudget {
		status = StatusOverBudget
	} else if projected < monthlyBudget*0.8 {
		status = StatusUnderBudget
	}

	percentUsed := currentSpend / monthlyBudget * 100
	if percentUsed > 100 {
		percentUsed = 100
	}

	return &BurnRate{
		Budget:      monthlyBudget,
		Current:     currentSpend,
		Remaining:   monthlyBudget - currentSpend,
		PercentUsed: percentUsed,
		Status:      status,
		Projected:   projected,
	}
}
