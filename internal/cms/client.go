// Package cms is the content-access client for the headless CMS.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/metrics"
)

var (
	// ErrNotFound matches a 404 from the content source and slug lookups that
	// return no document.
	ErrNotFound = errors.New("cms: not found")
	// ErrNotConfigured is returned by every call when no base URL is set.
	ErrNotConfigured = errors.New("cms: base url not configured")
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRevalidate = time.Minute
	maxResponseBytes  = 8 << 20
	tracerName        = "github.com/Project-Narvex/narvex-web/internal/cms"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cms: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("cms: %s returned %d", e.Endpoint, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client issues requests to the content source. A nil or unconfigured client
// fails every call with ErrNotConfigured.
type Client struct {
	baseURL    string
	token      string
	http       *http.Client
	revalidate time.Duration
	cache      *responseCache
	logger     *zap.Logger
	metrics    *metrics.Provider
	tracer     trace.Tracer
}

// Option customises a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithRevalidate sets how long a successful response is reused. Zero disables caching.
func WithRevalidate(d time.Duration) Option {
	return func(c *Client) { c.revalidate = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counts and latency on p.
func WithMetrics(p *metrics.Provider) Option {
	return func(c *Client) { c.metrics = p }
}

// NewClient constructs a Client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: defaultTimeout},
		revalidate: defaultRevalidate,
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.revalidate > 0 {
		c.cache = newResponseCache(c.revalidate)
	}
	return c
}

// Configured reports whether the client has a base URL.
func (c *Client) Configured() bool { return c != nil && c.baseURL != "" }

// BaseURL returns the configured origin without a trailing slash.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Get fetches /api/{endpoint} with q and returns the decoded envelope.
func (c *Client) Get(ctx context.Context, endpoint string, q Query) (Envelope, error) {
	if !c.Configured() {
		return Envelope{}, ErrNotConfigured
	}
	endpoint = strings.Trim(endpoint, "/")
	target := c.baseURL + "/api/" + endpoint
	if rawQuery := q.Encode(); rawQuery != "" {
		target += "?" + rawQuery
	}
	if env, ok := c.cache.get(target); ok {
		return env, nil
	}

	env, err := c.do(ctx, http.MethodGet, endpoint, target, nil)
	if err != nil {
		return Envelope{}, err
	}
	c.cache.put(target, env)
	return env, nil
}

// Post sends {"data": v} to /api/{endpoint}.
func (c *Client) Post(ctx context.Context, endpoint string, v any) (Envelope, error) {
	if !c.Configured() {
		return Envelope{}, ErrNotConfigured
	}
	body, err := json.Marshal(map[string]any{"data": v})
	if err != nil {
		return Envelope{}, fmt.Errorf("cms: encode %s: %w", endpoint, err)
	}
	endpoint = strings.Trim(endpoint, "/")
	return c.do(ctx, http.MethodPost, endpoint, c.baseURL+"/api/"+endpoint, body)
}

func (c *Client) do(ctx context.Context, method, endpoint, target string, body []byte) (env Envelope, err error) {
	ctx, span := c.tracer.Start(ctx, "cms."+strings.ToLower(method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cms.endpoint", endpoint),
			attribute.String("http.request.method", method),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		outcome := "ok"
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case err != nil:
			outcome = "error"
		}
		c.metrics.ObserveCMS(endpoint, outcome, time.Since(start))
		if status > 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
		if err != nil && outcome == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.logger.Debug("cms request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("cms: build request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("cms: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("cms: read %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Envelope{}, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("cms: decode %s: %w", endpoint, err)
	}
	env.Data = flatten(env.Data)
	return env, nil
}

func errorMessage(raw []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

// AssetURL makes an upload path absolute against the CMS origin. Absolute and
// protocol-relative URLs are returned unchanged.
func (c *Client) AssetURL(path string) string {
	return ResolveAssetURL(c.BaseURL(), path)
}

// ResolveAssetURL joins path onto base unless it is already absolute.
func ResolveAssetURL(base, path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"),
		strings.HasPrefix(path, "//"), strings.HasPrefix(path, "data:"):
		return path
	case base == "":
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
