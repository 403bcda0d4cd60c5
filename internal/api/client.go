// Package api is the HTTP client for the ByteTech backend. It mirrors
// the backend's router surface: auth, courses, forums, media, stats,
// support, and the sensei workbench.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty string means no credentials are attached.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client talks to a single ByteTech backend.
type Client struct {
	base     string
	http     *http.Client
	tokens   TokenSource
	logger   *zap.Logger
	validate *validator.Validate
	retry    retryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches a bearer-token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry configures the retry policy for idempotent requests.
func WithRetry(maxAttempts int, initialWait, maxWait time.Duration, multiplier float64) Option {
	return func(c *Client) {
		c.retry = retryPolicy{
			MaxAttempts: maxAttempts,
			InitialWait: initialWait,
			MaxWait:     maxWait,
			Multiplier:  multiplier,
		}
	}
}

// New creates a Client for the backend at base (no trailing slash
// required).
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   zap.NewNop(),
		validate: validator.New(),
		retry:    defaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the backend base URL.
func (c *Client) Base() string { return c.base }

// FileURL returns the media retrieval URL for a stored file. It is
// used directly as a media source or download link.
func (c *Client) FileURL(fileID string) string {
	return fmt.Sprintf("%s/media/get_file?file_id=%s", c.base, url.QueryEscape(fileID))
}

// getJSON performs a GET with retry and decodes the JSON reply into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, _, err := c.getRaw(ctx, path, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

// getRaw performs a GET with retry and returns the raw body and its
// Content-Type.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body []byte
	var contentType string
	err := c.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		b, ct, err := c.do(req)
		if err != nil {
			return err
		}
		body, contentType = b, ct
		return nil
	})
	return body, contentType, err
}

// postForm performs a form-encoded POST (the backend reads Form
// fields, not JSON bodies) and decodes the JSON reply into out.
// POSTs are not retried: none of them are idempotent.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.sendForm(ctx, http.MethodPost, path, form, out)
}

// deleteForm performs a DELETE with query parameters.
func (c *Client) deleteForm(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	body, _, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

func (c *Client) sendForm(ctx context.Context, method, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, _, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

// do executes a request, attaches credentials, and maps non-2xx
// replies to the package error taxonomy.
func (c *Client) do(req *http.Request) ([]byte, string, error) {
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Error(err))
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, resp.Header.Get("Content-Type"), nil
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, "", fmt.Errorf("%s: %w", req.URL.Path, ErrNotFound)
	case http.StatusUnauthorized:
		return nil, "", fmt.Errorf("%s: %w", req.URL.Path, ErrUnauthorized)
	case http.StatusTooManyRequests:
		return nil, "", &ErrRateLimit{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        &Error{Status: resp.StatusCode, Detail: errorDetail(body)},
		}
	}
	return nil, "", &Error{Status: resp.StatusCode, Detail: errorDetail(body)}
}

// errorDetail extracts the FastAPI-style {"detail": ...} message, or
// falls back to the raw body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func queryInt(key string, v int) url.Values {
	q := url.Values{}
	q.Set(key, fmt.Sprint(v))
	return q
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v + "s"); err == nil {
		return d
	}
	return 0
}
