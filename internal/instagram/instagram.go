// Package instagram reads recent media from the Instagram Graph API and
// shapes the payload served to the client-side feed widget.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/metrics"
	"github.com/Project-Narvex/narvex-web/internal/observability"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// ErrNoToken is returned when no access token is configured.
var ErrNoToken = errors.New("instagram: access token not configured")

// Payload sources.
const (
	SourceNoToken   = "no_token"
	SourceFallback  = "fallback"
	SourceInstagram = "instagram"
)

const (
	defaultTimeout  = 10 * time.Second
	mediaFields     = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp"
	tracerName      = "github.com/Project-Narvex/narvex-web/internal/instagram"
	maxErrorBody    = 4 << 10
	emptyResultPost = 4
)

// Post is one media item as rendered by the feed widget.
type Post struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	MediaType string `json:"mediaType"`
	MediaURL  string `json:"mediaUrl"`
	Thumbnail string `json:"thumbnailUrl,omitempty"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Payload is the /api/instagram response body.
type Payload struct {
	Posts   []Post `json:"posts"`
	Success bool   `json:"success"`
	Source  string `json:"source"`
	Error   string `json:"error,omitempty"`
}

// APIError is a non-2xx Graph API response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("instagram: status %d", e.StatusCode)
	}
	return fmt.Sprintf("instagram: status %d: %s", e.StatusCode, e.Message)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger used when no request logger is available.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records payload sources.
func WithMetrics(p *metrics.Provider) Option {
	return func(c *Client) { c.metrics = p }
}

// WithUsername sets the account handle used for fallback permalinks.
func WithUsername(username string) Option {
	return func(c *Client) { c.username = strings.TrimPrefix(strings.TrimSpace(username), "@") }
}

// Client calls the Graph API media edge of the token's account.
type Client struct {
	apiURL   string
	token    string
	username string
	http     *http.Client
	logger   *zap.Logger
	metrics  *metrics.Provider
	tracer   trace.Tracer
}

// NewClient returns a client for apiURL. An empty token is allowed; Feed then
// reports no_token.
func NewClient(apiURL, token string, opts ...Option) *Client {
	c := &Client{
		apiURL: strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		token:  strings.TrimSpace(token),
		http:   &http.Client{Timeout: defaultTimeout},
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recent fetches up to limit media items.
func (c *Client) Recent(ctx context.Context, limit int) ([]Post, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	limit = widgets.ClampFeedLimit(limit)

	ctx, span := c.tracer.Start(ctx, "instagram.media", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("access_token", c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/me/media?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("instagram: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("instagram: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	var body struct {
		Data []struct {
			ID           string `json:"id"`
			Caption      string `json:"caption"`
			MediaType    string `json:"media_type"`
			MediaURL     string `json:"media_url"`
			ThumbnailURL string `json:"thumbnail_url"`
			Permalink    string `json:"permalink"`
			Timestamp    string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("instagram: decode: %w", err)
	}

	posts := make([]Post, 0, len(body.Data))
	for _, m := range body.Data {
		if m.MediaURL == "" && m.ThumbnailURL == "" {
			continue
		}
		posts = append(posts, Post{
			ID:        m.ID,
			Caption:   m.Caption,
			MediaType: m.MediaType,
			MediaURL:  m.MediaURL,
			Thumbnail: m.ThumbnailURL,
			Permalink: m.Permalink,
			Timestamp: m.Timestamp,
		})
		if len(posts) == limit {
			break
		}
	}
	span.SetAttributes(attribute.Int("posts", len(posts)))
	return posts, nil
}

// Feed builds the endpoint payload. It never fails; errors select the
// fallback shape.
func (c *Client) Feed(ctx context.Context, limit int, username string) Payload {
	limit = widgets.ClampFeedLimit(limit)
	if username = strings.TrimPrefix(strings.TrimSpace(username), "@"); username == "" {
		username = c.username
	}

	posts, err := c.Recent(ctx, limit)
	var p Payload
	switch {
	case errors.Is(err, ErrNoToken):
		p = Payload{Posts: []Post{}, Success: false, Source: SourceNoToken}
	case err != nil:
		c.log(ctx).Warn("instagram feed failed, serving fallback posts", zap.Error(err))
		p = Payload{Posts: FallbackPosts(username, limit), Success: false, Source: SourceFallback, Error: err.Error()}
	case len(posts) == 0:
		p = Payload{Posts: FallbackPosts(username, min(emptyResultPost, limit)), Success: true, Source: SourceFallback}
	default:
		p = Payload{Posts: posts, Success: true, Source: SourceInstagram}
	}
	c.metrics.InstagramSource(p.Source)
	return p
}

func (c *Client) log(ctx context.Context) *zap.Logger {
	if l := observability.FromContext(ctx); l != observability.NoopLogger() {
		return l
	}
	return c.logger
}

func errorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
