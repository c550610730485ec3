package service

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/money"
)

// Synthetic history parameters. Every generated cost lies in
// [HistoryBaseCost, HistoryBaseCost+HistoryJitter).
const (
	HistoryDays     = 90
	HistoryBaseCost = 2400
	HistoryJitter   = 500
)

var (
	summaryMonthly = money.MustParse("2456.78")
	summaryWaste   = money.MustParse("612.50")
)

// CostService serves the fixed cost summary and the synthetic daily history.
type CostService struct {
	now     Clock
	rand    RandFloat
	metrics metrics.Recorder
}

// NewCostService creates a CostService. A nil rnd uses math/rand.
func NewCostService(now Clock, rnd RandFloat, recorder metrics.Recorder) *CostService {
	if rnd == nil {
		rnd = rand.Float64
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CostService{now: orNow(now), rand: rnd, metrics: recorder}
}

// Summary returns the canned month-to-date summary.
func (s *CostService) Summary() model.CostSummary {
	return model.CostSummary{
		Monthly:        money.Format(summaryMonthly),
		Waste:          money.Format(summaryWaste),
		SavingsPercent: 25,
		ByService: map[string]float64{
			"EC2":    1200,
			"RDS":    600,
			"S3":     300,
			"Lambda": 356.78,
		},
		History: []model.CostPoint{
			{Date: "2024-02-25", Cost: 2456.78},
			{Date: "2024-02-24", Cost: 2410.50},
			{Date: "2024-02-23", Cost: 2380.25},
		},
	}
}

// History generates HistoryDays points ending today (UTC), oldest first.
func (s *CostService) History() []model.CostPoint {
	today := s.now().UTC()
	points := make([]model.CostPoint, HistoryDays)
	for i := range points {
		day := today.AddDate(0, 0, i-(HistoryDays-1))
		points[i] = model.CostPoint{
			Date: day.Format(dateLayout),
			Cost: s.dailyCost(),
		}
	}
	s.metrics.IncCostHistoryGenerated()
	return points
}

func (s *CostService) dailyCost() float64 {
	r := s.rand()
	if r < 0 || r >= 1 {
		r = 0
	}
	jitter := decimal.NewFromFloat(r).Mul(decimal.NewFromInt(HistoryJitter))
	return decimal.NewFromInt(HistoryBaseCost).Add(jitter).Truncate(2).InexactFloat64()
}

// Refresh pretends to re-pull billing data and returns the refresh time.
func (s *CostService) Refresh() time.Time {
	return s.now()
}
