// sign-webhook signs a payment event the way the payment provider does and
// prints the Stripe-Signature header, optionally posting the event to a
// running API.
//
//	go run ./scripts/sign-webhook.go -secret whsec_... -post http://localhost:3001
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cloudtrim/cloudtrim/internal/webhook"
)

type event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
}

func main() {
	var (
		secret    = flag.String("secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Webhook signing secret")
		eventType = flag.String("type", "checkout.session.completed", "Event type for the generated payload")
		file      = flag.String("file", "", "Read the payload from this file instead of generating one (- for stdin)")
		postURL   = flag.String("post", "", "API base URL to deliver the signed event to")
	)
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "a signing secret is required (-secret or STRIPE_WEBHOOK_SECRET)")
		os.Exit(1)
	}

	now := time.Now()
	payload, err := loadPayload(*file, *eventType, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "payload:", err)
		os.Exit(1)
	}

	header := webhook.SignHeader(*secret, now, payload)
	if *postURL == "" {
		fmt.Printf("%s: %s\n", webhook.SignatureHeader, header)
		fmt.Println(string(payload))
		return
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(*postURL, "/")+"/api/webhook/stripe", bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintln(os.Stderr, "build request:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.SignatureHeader, header)

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deliver:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("%d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func loadPayload(file, eventType string, now time.Time) ([]byte, error) {
	switch file {
	case "":
		return json.Marshal(event{
			ID:      "evt_" + strings.ToLower(ulid.Make().String()),
			Type:    eventType,
			Created: now.Unix(),
		})
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(file)
	}
}
