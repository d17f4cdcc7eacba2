// Package httpserver assembles the router, middleware stack and embedded
// assets into an *http.Server.
package httpserver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/handlers"
	"github.com/Project-Narvex/narvex-web/internal/i18n"
	"github.com/Project-Narvex/narvex-web/internal/metrics"
	custommw "github.com/Project-Narvex/narvex-web/internal/middleware"
	"github.com/Project-Narvex/narvex-web/internal/observability"
	"github.com/Project-Narvex/narvex-web/public"
)

const requestTimeout = 30 * time.Second

// Config holds runtime options for the HTTP server.
type Config struct {
	Address      string
	Development  bool
	CMSOrigin    string
	Handlers     *handlers.Handlers
	Bundle       *i18n.Bundle
	Metrics      *metrics.Provider
	Logger       *zap.Logger
	Static       fs.FS
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:       durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

// NewRouter builds the routed handler without a server around it.
func NewRouter(cfg Config) (http.Handler, error) {
	if cfg.Handlers == nil {
		return nil, errors.New("httpserver: handlers are required")
	}
	if cfg.Bundle == nil {
		return nil, errors.New("httpserver: i18n bundle is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewProvider()
	}
	static := cfg.Static
	if static == nil {
		var err error
		if static, err = public.StaticFS(); err != nil {
			return nil, fmt.Errorf("httpserver: embed static: %w", err)
		}
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(cfg.Metrics.Middleware)
	router.Use(custommw.Security(custommw.SecurityConfig{
		Development: cfg.Development,
		CMSOrigin:   cfg.CMSOrigin,
	}))
	router.Use(custommw.Locale(cfg.Bundle))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(requestTimeout))

	h := cfg.Handlers

	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", cfg.Metrics.Handler())
	router.Handle("/assets/*", http.StripPrefix("/assets", custommw.Assets(static, cfg.Development)))
	router.Get("/robots.txt", h.Robots)
	router.Get("/sitemap.xml", h.Sitemap)

	router.Get("/", h.Home)
	router.Get("/about", h.About)
	router.Get("/services", h.Services)
	router.Get("/portfolio", h.Portfolio)
	router.Get("/portfolio/{slug}", h.PortfolioItem)
	router.Get("/blog", h.Blog)
	router.Get("/blog/{slug}", h.Article)
	router.Get("/companies", h.Companies)
	router.Get("/companies/{slug}", h.Company)
	router.Get("/subsidiaries", h.Subsidiaries)
	router.Get("/subsidiaries/{slug}", h.Subsidiary)
	router.Get("/contact", h.Contact)

	router.Route("/api", func(r chi.Router) {
		r.Use(chimw.NoCache)
		r.Post("/contact", h.ContactSubmit)
		r.Get("/instagram", h.InstagramFeed)
		r.Get("/portfolio", h.PortfolioAPI)
		r.Get("/articles", h.ArticlesAPI)
	})

	router.NotFound(h.NotFound)
	return router, nil
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
