// Package client is a typed HTTP client for the cloudtrim API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/handler"
	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/respond"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client calls the API rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for baseURL, e.g. "http://localhost:3001".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (handler.HealthResponse, error) {
	var out handler.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Me returns the current user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out handler.MeResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out.User, err
}

// AWSStatus reports the cloud connection.
func (c *Client) AWSStatus(ctx context.Context) (handler.AWSStatusResponse, error) {
	var out handler.AWSStatusResponse
	err := c.do(ctx, http.MethodGet, "/api/aws/status", nil, &out)
	return out, err
}

// Costs returns the monthly cost summary.
func (c *Client) Costs(ctx context.Context) (model.CostSummary, error) {
	var out model.CostSummary
	err := c.do(ctx, http.MethodGet, "/api/costs", nil, &out)
	return out, err
}

// CostHistory returns the daily cost series, oldest first.
func (c *Client) CostHistory(ctx context.Context) ([]model.CostPoint, error) {
	var out handler.HistoryResponse
	err := c.do(ctx, http.MethodGet, "/api/costs/history", nil, &out)
	return out.History, err
}

// Recommendations lists cost-saving recommendations.
func (c *Client) Recommendations(ctx context.Context) ([]model.Recommendation, error) {
	var out handler.RecommendationListResponse
	err := c.do(ctx, http.MethodGet, "/api/recommendations", nil, &out)
	return out.Recommendations, err
}

// Remediate queues the remediation for recommendation id.
func (c *Client) Remediate(ctx context.Context, id string) (handler.Ack, error) {
	var out handler.Ack
	err := c.do(ctx, http.MethodPost, "/api/recommendations/"+url.PathEscape(id)+"/remediate", struct{}{}, &out)
	return out, err
}

// Checkout starts a checkout session.
func (c *Client) Checkout(ctx context.Context) (model.CheckoutSession, error) {
	var out model.CheckoutSession
	err := c.do(ctx, http.MethodPost, "/api/checkout", struct{}{}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope respond.ErrorResponse
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
