package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cloudtrim/cloudtrim/internal/money"
)

// Trend is the arrow shown next to a metric card's change line.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// MetricCard is one of the headline tiles on the dashboard.
type MetricCard struct {
	Title  string
	Value  string
	Change string
	Trend  Trend
}

// CardRecommendation is a recommendation as the dashboard lists it.
type CardRecommendation struct {
	ID              string
	Title           string
	Description     string
	SavingsPerMonth decimal.Decimal
}

// SampleRecommendations are the cards shown under "Top Recommendations".
func SampleRecommendations() []CardRecommendation {
	return []CardRecommendation{
		{
			ID:              "rds",
			Title:           "Stop Unused RDS Database",
			Description:     `Database "prod-old" has no connections for 30 days.`,
			SavingsPerMonth: decimal.NewFromInt(1200),
		},
		{
			ID:              "ec2",
			Title:           "Rightsize EC2 Instances",
			Description:     "5 instances are consistently underutilized (avg CPU <5%).",
			SavingsPerMonth: decimal.NewFromInt(850),
		},
		{
			ID:              "s3",
			Title:           "Enable S3 Lifecycle Policies",
			Description:     "42GB of old data in standard tier could be moved to Glacier.",
			SavingsPerMonth: decimal.NewFromInt(420),
		},
	}
}

var (
	currentMonthCost  = decimal.NewFromInt(12450)
	potentialSavings  = decimal.NewFromInt(3720)
	activeRecommended = 23
)

// PotentialSavings is the target of the animated "Potential Savings" counter.
func PotentialSavings() decimal.Decimal { return potentialSavings }

// MetricCards renders the four headline tiles. The "Savings Rate" change
// line reflects how many recommendations are applied on b.
func MetricCards(b *Board) []MetricCard {
	applied := 0
	if b != nil {
		applied = b.AppliedCount()
	}
	return []MetricCard{
		{Title: "Current Month Cost", Value: FormatCurrency(currentMonthCost), Change: "↑ 5% vs last month", Trend: TrendUp},
		{Title: "Potential Savings", Value: FormatCurrency(potentialSavings), Change: "From " + strconv.Itoa(activeRecommended) + " recommendations", Trend: TrendNeutral},
		{Title: "Savings Rate", Value: "29.8%", Change: strconv.Itoa(applied) + " applied", Trend: TrendUp},
		{Title: "Active Recommendations", Value: strconv.Itoa(activeRecommended), Change: "High priority", Trend: TrendNeutral},
	}
}

// FormatCurrency renders whole dollars with a "$" prefix and en-US grouping.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + money.FormatWhole(d)
}
