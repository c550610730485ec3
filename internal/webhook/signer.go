// Package webhook signs and verifies Stripe-Signature webhook payloads.
//
// Signature checks go through stripe-go's webhook package. The replay
// window is enforced here against a caller-supplied clock so services with
// an injected clock see consistent results.
package webhook

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	stripewebhook "github.com/stripe/stripe-go/v76/webhook"
)

// SignatureHeader is the request header carrying the signature.
const SignatureHeader = "Stripe-Signature"

// DefaultTolerance is the accepted clock skew between signer and receiver.
const DefaultTolerance = stripewebhook.DefaultTolerance

// GenerateSignature returns the hex v1 signature of payload signed at t.
func GenerateSignature(secret string, t time.Time, payload []byte) string {
	return hex.EncodeToString(stripewebhook.ComputeSignature(t, payload, secret))
}

// SignHeader builds a complete Stripe-Signature header value.
func SignHeader(secret string, t time.Time, payload []byte) string {
	signed := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: t,
	})
	return signed.Header
}

// Verify checks header against payload. A positive tolerance also rejects
// timestamps more than tolerance away from now in either direction.
func Verify(secret, header string, payload []byte, tolerance time.Duration, now time.Time) error {
	if err := stripewebhook.ValidatePayloadIgnoringTolerance(payload, header, secret); err != nil {
		return err
	}
	if tolerance <= 0 {
		return nil
	}

	signedAt, err := timestamp(header)
	if err != nil {
		return err
	}
	skew := now.Sub(signedAt)
	if skew < 0 {
		skew = -skew
	}
	if skew > tolerance {
		return ErrReplayWindowExceeded
	}
	return nil
}

// timestamp extracts the t= value from an already validated header.
func timestamp(header string) (time.Time, error) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key != "t" {
			continue
		}
		unix, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, ErrMalformedHeader
		}
		return time.Unix(unix, 0), nil
	}
	return time.Time{}, ErrMalformedHeader
}
