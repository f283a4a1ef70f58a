// Package automation is a thin client for the external webhook automation
// platform. Failures are reported as structured results, never raised:
// request handlers translate Success=false into a 502.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pulseboard/internal/platform/metrics"
)

// Result is the uniform outcome shape for every trigger.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the webhook platform settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client posts to the automation platform's webhook endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client, used by tests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// New creates an automation client.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// TriggerResubmission forwards the payload to the resubmission webhook.
func (c *Client) TriggerResubmission(ctx context.Context, payload map[string]any) Result {
	return c.trigger(ctx, "resubmit", "/webhook/resubmit", payload)
}

// TriggerAudit starts an audit run. The webhook takes no payload.
func (c *Client) TriggerAudit(ctx context.Context) Result {
	return c.trigger(ctx, "audit", "/webhook/audit", nil)
}

func (c *Client) trigger(ctx context.Context, action, path string, payload map[string]any) Result {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return c.failure(ctx, action, fmt.Sprintf("failed to encode payload: %v", err))
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return c.failure(ctx, action, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failure(ctx, action, fmt.Sprintf("webhook request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, action, fmt.Sprintf("webhook returned status %d", resp.StatusCode))
	}

	// Response bodies are informational; a webhook that returns no JSON is
	// still a success.
	var data map[string]any
	if raw, err := io.ReadAll(resp.Body); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &data)
	}

	metrics.AutomationTriggers.WithLabelValues(action, "success").Inc()
	return Result{
		Success: true,
		Message: fmt.Sprintf("%s triggered", action),
		Data:    data,
	}
}

func (c *Client) failure(ctx context.Context, action, message string) Result {
	metrics.AutomationTriggers.WithLabelValues(action, "failure").Inc()
	c.logger.WarnContext(ctx, "automation trigger failed",
		"action", action,
		"message", message,
	)
	return Result{Success: false, Message: message}
}
