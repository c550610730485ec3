package model

// CostPoint is a single day of spend.
type CostPoint struct {
	Date string  `json:"date"` // YYYY-MM-DD
	Cost float64 `json:"cost"`
}

// CostSummary is the month-to-date overview shown on the dashboard.
// Monthly and Waste are preformatted strings ("2,456.78").
type CostSummary struct {
	Monthly        string             `json:"monthly"`
	Waste          string             `json:"waste"`
	SavingsPercent int                `json:"savingsPercent"`
	ByService      map[string]float64 `json:"byService"`
	History        []CostPoint        `json:"history"`
}
