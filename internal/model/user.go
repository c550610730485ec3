// Package model defines domain entities for the application.
package model

// Subscription tiers. The tier is informational only; nothing branches on it.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// User is the hardcoded account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Tier  string `json:"tier"`
}
