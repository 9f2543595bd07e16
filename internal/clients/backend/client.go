// Package backend provides a client for the portfolio backend REST API
package backend

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

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

const (
	DefaultBaseURL   = "http://localhost:8080/api"
	DefaultRateLimit = 20 // requests per second

	maxBodyBytes   = 8 << 20
	maxMessageSize = 200
)

var _ interfaces.BackendClient = (*Client)(nil)

// Client implements interfaces.BackendClient
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout. Zero means requests never time out.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// request describes one backend call
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	// optional allows an empty 2xx body when a result is expected
	optional bool
}

// do performs a rate-limited request and decodes a JSON response into result.
// A nil result discards the body.
func (c *Client) do(ctx context.Context, r request, result interface{}) error {
	endpoint := r.method + " " + r.path

	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := common.SessionFromContext(ctx); s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	c.logger.Debug().Str("method", r.method).Str("path", r.path).Msg("Backend API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
			Endpoint:   endpoint,
		}
	}

	if result == nil {
		return nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		if r.optional {
			return nil
		}
		return &MalformedPayloadError{Endpoint: endpoint, Err: errors.New("empty response body")}
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return &MalformedPayloadError{Endpoint: endpoint, Err: errors.New("null response body")}
	}

	if err := json.Unmarshal(trimmed, result); err != nil {
		return &MalformedPayloadError{Endpoint: endpoint, Err: err}
	}

	return nil
}

// errorMessage extracts {"message": ...} (or {"error": ...}) from an error body,
// falling back to the raw body and then to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return http.StatusText(status)
	}
	if len(text) > maxMessageSize {
		text = text[:maxMessageSize]
	}
	return text
}

func userPath(format, userID string) string {
	return fmt.Sprintf(format, url.PathEscape(userID))
}
