package webhook

import stripewebhook "github.com/stripe/stripe-go/v76/webhook"

// Verification errors. They alias stripe-go's sentinels so errors.Is works
// against either name.
var (
	ErrMissingHeader        = stripewebhook.ErrNotSigned
	ErrMalformedHeader      = stripewebhook.ErrInvalidHeader
	ErrInvalidSignature     = stripewebhook.ErrNoValidSignature
	ErrReplayWindowExceeded = stripewebhook.ErrTooOld
)
