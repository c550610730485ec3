package model

// Complexity grades how much effort a recommendation takes to apply.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// RecommendationStatus is the client-side lifecycle of a recommendation.
// The server never stores or returns it.
type RecommendationStatus string

const (
	StatusPending    RecommendationStatus = "pending"
	StatusApplied    RecommendationStatus = "applied"
	StatusRolledBack RecommendationStatus = "rolled_back"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s RecommendationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApplied, StatusRolledBack:
		return true
	}
	return false
}

// Recommendation is a suggested cost-saving action.
type Recommendation struct {
	ID             string               `json:"id"`
	Service        string               `json:"service"`
	Title          string               `json:"title"`
	Savings        float64              `json:"savings"`
	SavingsPercent int                  `json:"savingsPercent"`
	Complexity     Complexity           `json:"complexity"`
	Status         RecommendationStatus `json:"status,omitempty"`
}
