// Package metrics exposes Prometheus instrumentation for the site.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "narvex"

// Provider owns a private registry so tests and multiple servers never collide on
// global registration.
type Provider struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CMSRequests      *prometheus.CounterVec
	CMSDuration      *prometheus.HistogramVec
	PageFallbacks    *prometheus.CounterVec
	ContactForwards  *prometheus.CounterVec
	InstagramSources *prometheus.CounterVec
}

// NewProvider registers all collectors on a fresh registry.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	p := &Provider{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		CMSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cms_requests_total",
			Help:      "Requests issued to the content source, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		CMSDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cms_request_duration_seconds",
			Help:      "Content source request latency by endpoint.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		PageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fallback_total",
			Help:      "Renders that substituted static fallback content, by page or collection.",
		}, []string{"page"}),
		ContactForwards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact submissions by forwarding outcome.",
		}, []string{"outcome"}),
		InstagramSources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instagram_feed_total",
			Help:      "Instagram feed responses by payload source.",
		}, []string{"source"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.HTTPRequests,
		p.HTTPDuration,
		p.CMSRequests,
		p.CMSDuration,
		p.PageFallbacks,
		p.ContactForwards,
		p.InstagramSources,
	)
	return p
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the underlying registry for tests.
func (p *Provider) Registry() *prometheus.Registry { return p.registry }

// ObserveCMS records one content source call. A nil provider is a no-op.
func (p *Provider) ObserveCMS(endpoint, outcome string, d time.Duration) {
	if p == nil {
		return
	}
	p.CMSRequests.WithLabelValues(endpoint, outcome).Inc()
	p.CMSDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Fallback counts a static fallback substitution for page.
func (p *Provider) Fallback(page string) {
	if p == nil {
		return
	}
	p.PageFallbacks.WithLabelValues(page).Inc()
}

// ContactForward counts a contact submission outcome ("forwarded" or "local").
func (p *Provider) ContactForward(outcome string) {
	if p == nil {
		return
	}
	p.ContactForwards.WithLabelValues(outcome).Inc()
}

// InstagramSource counts which payload shape the feed endpoint returned.
func (p *Provider) InstagramSource(source string) {
	if p == nil {
		return
	}
	p.InstagramSources.WithLabelValues(source).Inc()
}

// Middleware records request counts and latency keyed by chi route pattern.
func (p *Provider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		p.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rw.status)).Inc()
		p.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
