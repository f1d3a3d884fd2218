package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	nrpkg "github.com/piresc/storefront/internal/pkg/newrelic"
)

// DefaultTimeout applies when Config.Timeout is zero
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of an upstream body is read
const maxBodyBytes = 1 << 20

// Config holds HTTP client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a JSON HTTP client for third-party APIs. Every call is
// recorded as a New Relic external segment when a transaction is in ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request against baseURL + endpoint
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// GetJSON performs a GET and decodes the body into out regardless of status.
// The status code is returned so callers can decide what a failure means.
func (c *Client) GetJSON(ctx context.Context, endpoint string, out interface{}) (int, error) {
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
		}
	}

	return resp.StatusCode, nil
}

func (c *Client) url(endpoint string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
