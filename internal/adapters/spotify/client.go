package spotify

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

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Client is an HTTP client for the Spotify Web API bound to one user.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
	limiter     *rate.Limiter
	logger      *log.Logger
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetry overrides the retry budget and the base backoff.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = backoff
	}
}

// WithRateLimiter makes every attempt wait on l first. The limiter may be
// shared between clients.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger used for retry warnings and request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a new Spotify client. httpClient is expected to
// attach the user's bearer token; see NewCatalogFactory.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FactoryConfig holds the settings shared by every per-user client.
type FactoryConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	Backoff       time.Duration
	RatePerSecond float64
	Logger        *log.Logger
}

// NewCatalogFactory returns a factory that binds a Client to a credential.
// All clients built by one factory share a single request rate limiter.
func NewCatalogFactory(cfg FactoryConfig) ports.CatalogFactory {
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := max(int(cfg.RatePerSecond), 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return func(ctx context.Context, cred domain.Credential) ports.Catalog {
		httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(cred.Token()))
		httpClient.Timeout = cfg.Timeout
		return NewClient(httpClient, cfg.BaseURL,
			WithRetry(cfg.MaxRetries, cfg.Backoff),
			WithRateLimiter(limiter),
			WithLogger(cfg.Logger),
		)
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	return c.send(ctx, op, http.MethodGet, endpoint, nil, out)
}

func (c *Client) postJSON(ctx context.Context, op, endpoint string, body, out any) error {
	return c.send(ctx, op, http.MethodPost, endpoint, body, out)
}

// send performs one logical catalog call. Non-2xx responses come back as
// *ports.CatalogError carrying the status and response body.
func (c *Client) send(ctx context.Context, op, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("spotify adapter: %s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("spotify adapter: %s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "op", op, "method", method, "url", endpoint)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("spotify adapter: %w", &ports.CatalogError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: %s: decode response: %w", op, err)
	}
	return nil
}
