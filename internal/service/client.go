// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package service talks to the remote paper search service. The service
// accepts a natural-language query on a single JSON POST endpoint, rewrites
// it into an arXiv query, and returns the matching papers. The client turns
// every reply, including failures, into a types.Outcome.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-researcher/internal/httputil"
	"github.com/pdiddy/arxiv-researcher/internal/logging"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

const (
	// DefaultBaseURL is where the service listens in a local setup.
	DefaultBaseURL = "http://localhost:8000"

	searchPath = "/api/search"
	healthPath = "/api/health"

	maxBodyBytes = 8 << 20
)

// Client is the search service client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// NewClient creates a client for the service at cfg.BaseURL. The client
// itself sets no timeout; per-call deadlines come from the context.
func NewClient(cfg types.ServiceConfig, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search posts the query and classifies the reply. It never returns nil and
// never retries.
func (c *Client) Search(ctx context.Context, query string) types.Outcome {
	log := logging.FromContext(ctx)

	payload, err := json.Marshal(searchBody{Query: query})
	if err != nil {
		log.Error("encoding search request", zap.Error(err))
		return types.TransportError{Message: types.GenericTransportMessage}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		log.Error("creating search request", zap.Error(err))
		return types.TransportError{Message: types.GenericTransportMessage}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("search request failed", zap.Error(err))
		return types.TransportError{Message: transportMessage(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading search response", zap.Error(err))
		return types.TransportError{Message: transportMessage(err)}
	}

	outcome := decodeOutcome(resp.StatusCode, body)
	log.Debug("search response classified",
		zap.Int("status", resp.StatusCode),
		zap.String("outcome", string(outcome.Kind())),
	)
	return outcome
}

// Health probes the service's health endpoint. A 429 is retried with backoff.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 2)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Detail: failureDetail(body), Op: "health"}
	}

	var h struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return fmt.Errorf("parsing health response: %w", err)
	}
	if h.Status != "healthy" {
		return fmt.Errorf("service reports status %q", h.Status)
	}
	return nil
}

// transportMessage describes a failed exchange for the user.
func transportMessage(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.TimedOutMessage
	case errors.As(err, &netErr) && netErr.Timeout():
		return types.TimedOutMessage
	case errors.Is(err, context.Canceled):
		return types.CancelledMessage
	default:
		return types.GenericTransportMessage + ": " + err.Error()
	}
}
