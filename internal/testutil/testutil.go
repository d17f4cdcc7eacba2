// Package testutil builds the full HTTP stack for integration tests.
package testutil

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/config"
	"github.com/Project-Narvex/narvex-web/internal/contact"
	"github.com/Project-Narvex/narvex-web/internal/handlers"
	"github.com/Project-Narvex/narvex-web/internal/httpserver"
	"github.com/Project-Narvex/narvex-web/internal/i18n"
	"github.com/Project-Narvex/narvex-web/internal/instagram"
	"github.com/Project-Narvex/narvex-web/internal/metrics"
	"github.com/Project-Narvex/narvex-web/internal/pages"
	"github.com/Project-Narvex/narvex-web/internal/render"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

type serverConfig struct {
	cmsURL         string
	instagramURL   string
	instagramToken string
	development    bool
	metrics        *metrics.Provider
}

// ServerOption customises the stack built by NewServer.
type ServerOption func(*serverConfig)

// WithCMS points the content client at url. Without it the client is
// unconfigured and every page serves its static fallback.
func WithCMS(url string) ServerOption {
	return func(c *serverConfig) { c.cmsURL = url }
}

// WithInstagram sets the Graph API base URL and token.
func WithInstagram(url, token string) ServerOption {
	return func(c *serverConfig) {
		c.instagramURL = url
		c.instagramToken = token
	}
}

// WithDevelopment selects the development security policy.
func WithDevelopment() ServerOption {
	return func(c *serverConfig) { c.development = true }
}

// WithMetrics shares a metrics provider with the test.
func WithMetrics(p *metrics.Provider) ServerOption {
	return func(c *serverConfig) { c.metrics = p }
}

// NewServer constructs an httptest server running the full HTTP stack.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := serverConfig{instagramURL: "https://graph.instagram.com"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewProvider()
	}
	site := config.DefaultSite()

	client := cms.NewClient(cfg.cmsURL, cms.WithTimeout(2*time.Second), cms.WithMetrics(cfg.metrics))
	pageSvc := pages.NewService(client, pages.WithMetrics(cfg.metrics), pages.WithAssetBase(client.BaseURL()))
	contactSvc, err := contact.NewService(contact.Deps{Forwarder: client, Metrics: cfg.metrics})
	if err != nil {
		t.Fatalf("contact service: %v", err)
	}
	ig := instagram.NewClient(cfg.instagramURL, cfg.instagramToken,
		instagram.WithUsername(site.InstagramHandle()), instagram.WithMetrics(cfg.metrics))

	bundle, err := i18n.Default("en", site.Locales)
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	renderer, err := render.New(render.Config{Bundle: bundle})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	h, err := handlers.New(handlers.Deps{
		Pages:             pageSvc,
		Contact:           contactSvc,
		Instagram:         ig,
		Renderer:          renderer,
		Bundle:            bundle,
		Site:              site,
		BaseURL:           "https://narvex.test",
		InstagramUsername: site.InstagramHandle(),
	})
	if err != nil {
		t.Fatalf("handlers: %v", err)
	}
	router, err := httpserver.NewRouter(httpserver.Config{
		Development: cfg.development,
		CMSOrigin:   cfg.cmsURL,
		Handlers:    h,
		Bundle:      bundle,
		Metrics:     cfg.metrics,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}
