// Package commerceapi is the HTTP client for the remote commerce backend.
package commerceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/dedup"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultAPIPrefix = "/api/v1"

	maxBodyBytes = 4 << 20
)

// Config configures the client.
type Config struct {
	BaseURL   string
	APIPrefix string
	Timeout   time.Duration
	// DedupWindow collapses identical GETs issued within the window.
	DedupWindow time.Duration
	// RateLimit caps outgoing requests per second; 0 disables the limit.
	RateLimit float64
	RateBurst int
}

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("commerce api %s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client talks to the commerce backend. GETs go through a dedup group keyed
// by the full request URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	dedup      *dedup.Group[[]byte]
	logger     *slog.Logger
}

// NewClient creates a client. httpClient may be nil; the default one has the
// configured timeout and an instrumented transport.
func NewClient(cfg Config, httpClient *http.Client, clk clock.Clock, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid commerce api base url %q", cfg.BaseURL)
	}
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(base.String(), "/") + "/" + strings.Trim(prefix, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		dedup:      dedup.NewGroup[[]byte](cfg.DedupWindow, clk),
		logger:     logger,
	}, nil
}

// ResetDedup drops every pending GET registration. Called at session
// boundaries.
func (c *Client) ResetDedup() {
	c.dedup.Clear()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON fetches path and decodes the body into out. Concurrent identical
// requests share one round trip.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path, query)
	body, err := c.dedup.Do(ctx, u, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	body, err := c.postRaw(ctx, path, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postRaw(ctx context.Context, path string, in any) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, c.endpoint(path, nil), payload)
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("commerce api request failed", "method", method, "url", u, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("commerce api request", "method", method, "url", u, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
