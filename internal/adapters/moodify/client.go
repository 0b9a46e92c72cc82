// Package moodify forwards mood-analysis requests to the external Moodify
// service. Request and response bodies are passed through unchanged.
package moodify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

const defaultTimeout = 60 * time.Second

// maxResponseBody caps how much of the upstream reply is buffered.
const maxResponseBody = 4 << 20

type Client struct {
	url        string
	httpClient *http.Client
}

var _ ports.MoodClassifier = (*Client)(nil)

// NewClient builds a client posting to url, the full analysis endpoint
// (e.g. http://127.0.0.1:8000/analyze). An empty url yields a client whose
// calls fail with ports.ErrMoodNotConfigured.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: httpClient,
	}
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// Classify posts body to the mood service with the caller's bearer token
// and returns the upstream status and JSON reply.
func (c *Client) Classify(ctx context.Context, accessToken string, body json.RawMessage) (int, json.RawMessage, error) {
	if c.url == "" {
		return 0, nil, ports.ErrMoodNotConfigured
	}
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("moodify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("moodify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil, fmt.Errorf("moodify: %s: %w", c.url, ports.ErrMoodEndpointNotFound)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, fmt.Errorf("moodify: read response: %w", err)
	}
	if !json.Valid(raw) {
		return 0, nil, fmt.Errorf("moodify: decode response: status %d: invalid JSON", resp.StatusCode)
	}

	return resp.StatusCode, json.RawMessage(raw), nil
}
