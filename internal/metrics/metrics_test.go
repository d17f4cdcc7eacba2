package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	p := NewProvider()
	r := chi.NewRouter()
	r.Use(p.Middleware)
	r.Get("/portfolio/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio/missing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(p.HTTPRequests.WithLabelValues("/portfolio/{slug}", http.MethodGet, "404"))
	assert.Equal(t, float64(2), got)
}

func TestNilProviderIsNoop(t *testing.T) {
	var p *Provider
	assert.NotPanics(t, func() {
		p.ObserveCMS("articles", "ok", time.Millisecond)
		p.Fallback("home")
		p.ContactForward("local")
		p.InstagramSource("no_token")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	p := NewProvider()
	p.Fallback("about")
	p.ObserveCMS("about", "error", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `narvex_page_fallback_total{page="about"} 1`), body)
	assert.Contains(t, body, `narvex_cms_requests_total{endpoint="about",outcome="error"} 1`)
}
