package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.MarketplaceAPI      = (*Client)(nil)
	_ driven.ProfessionalCounter = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an unparseable error body is kept.
	maxErrorBody = 512
)

// Config holds configuration for the REST client.
type Config struct {
	// BaseURL is the API root, e.g. https://api.example.com/api.
	BaseURL string

	// Timeout bounds every request (default: 30s).
	Timeout time.Duration

	// RateLimit throttles requests (default: DefaultRateLimit).
	RateLimit *RateLimitConfig

	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// Client talks to the marketplace backend.
type Client struct {
	baseURL     string
	public      *http.Client
	authed      *http.Client
	rateLimiter *RateLimiter
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a backend client. Authenticated calls obtain their
// bearer token from tokenProvider.
func NewClient(cfg Config, tokenProvider driven.TokenProvider) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	rl := DefaultRateLimit
	if cfg.RateLimit != nil {
		rl = *cfg.RateLimit
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		public: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		authed: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &sessionTransport{provider: tokenProvider, base: transport},
		},
		rateLimiter: NewRateLimiter(rl),
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one backend call.
type request struct {
	op     string
	method string
	path   string
	query  any
	body   any
	// raw replaces body with a preencoded payload of contentType.
	raw         io.Reader
	contentType string
	auth        bool
}

// do sends req and decodes the envelope data into out (if non-nil).
// It returns the envelope message.
func (c *Client) do(ctx context.Context, req request, out any) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", newTransportError(req.op, err)
	}

	endpoint := c.baseURL + req.path
	if req.query != nil {
		values, err := query.Values(req.query)
		if err != nil {
			return "", fmt.Errorf("%s: encode query: %w", req.op, err)
		}
		if encoded := values.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	body := req.raw
	contentType := req.contentType
	if body == nil && req.body != nil {
		jsonBody, err := json.Marshal(req.body)
		if err != nil {
			return "", fmt.Errorf("%s: marshal request: %w", req.op, err)
		}
		body = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("%s: create request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	client := c.public
	if req.auth {
		client = c.authed
	}

	logger.Debug("%s %s", req.method, endpoint)
	resp, err := client.Do(httpReq)
	if err != nil {
		// Session problems surface before the request is sent.
		if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrSessionExpired) {
			return "", err
		}
		return "", newTransportError(req.op, err)
	}
	defer resp.Body.Close()

	return c.decode(req.op, resp, out)
}

func (c *Client) decode(op string, resp *http.Response, out any) (string, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newTransportError(op, fmt.Errorf("read response: %w", err))
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimiter.Backoff(resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if decodeErr != nil {
			msg = strings.TrimSpace(truncate(string(raw), maxErrorBody))
		}
		return "", newStatusError(op, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", newTransportError(op, fmt.Errorf("decode response: %w", decodeErr))
	}
	if !env.Success {
		return "", newStatusError(op, resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", newTransportError(op, fmt.Errorf("decode data: %w", err))
		}
	}
	return env.Message, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
