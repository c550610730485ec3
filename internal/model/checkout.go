package model

// CheckoutSessionPrefix marks every generated session id as a test-mode session.
const CheckoutSessionPrefix = "cs_test_"

// CheckoutSession is a placeholder payment session. URL never resolves to a real checkout.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
