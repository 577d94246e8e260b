// Package client talks to the time-entry REST resource. Every call performs
// exactly one request/response exchange; nothing is retried or cached.
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

	"github.com/google/uuid"

	"github.com/Tiliavir/icicle-admin/internal/logging"
)

// CorrelationIDHeader tags each request so client and server logs can be joined.
const CorrelationIDHeader = "X-Correlation-ID"

const (
	jsonContentType       = "application/json"
	mergePatchContentType = "application/merge-patch+json"
)

// Client is a REST client for the time-entry resource. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client, typically one carrying a
// bearer token (see auth.HTTPClient).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for per-exchange debug records.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the backend at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response carries the status and headers of an exchange. Headers are passed
// through as received.
type Response struct {
	StatusCode int
	Header     http.Header
}

// OK reports whether the exchange succeeded.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// do performs one exchange and returns the raw response body. Any non-2xx
// status is turned into a *StatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, payload any) (*Response, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	correlationID := uuid.NewString()
	req.Header.Set("Accept", jsonContentType)
	req.Header.Set(CorrelationIDHeader, correlationID)
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "correlation_id", correlationID, "error", err)
		return nil, nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"correlation_id", correlationID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header}, body, nil
}

// emptyBody reports whether a response carried no entity.
func emptyBody(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
